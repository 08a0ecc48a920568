package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEasterSunday_KnownYears(t *testing.T) {
	tests := []struct {
		year int
		want time.Time
	}{
		{2016, date(2016, time.March, 27)},
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EasterSunday(tt.year), "year %d", tt.year)
	}
}

func TestForYear_EasterRelativeHolidays2024(t *testing.T) {
	s := ForYear(2024, RegionBW)

	// исторически проверяемые даты 2024 года
	assert.True(t, s.Contains(date(2024, time.March, 29)), "Karfreitag")
	assert.True(t, s.Contains(date(2024, time.April, 1)), "Ostermontag")
	assert.True(t, s.Contains(date(2024, time.May, 9)), "Christi Himmelfahrt")
	assert.True(t, s.Contains(date(2024, time.May, 20)), "Pfingstmontag")
	assert.True(t, s.Contains(date(2024, time.May, 30)), "Fronleichnam")
}

func TestForYear_NationwideHolidays(t *testing.T) {
	s := ForYear(2025, RegionBE)

	assert.True(t, s.Contains(date(2025, time.January, 1)))
	assert.True(t, s.Contains(date(2025, time.May, 1)))
	assert.True(t, s.Contains(date(2025, time.October, 3)))
	assert.True(t, s.Contains(date(2025, time.December, 25)))
	assert.True(t, s.Contains(date(2025, time.December, 26)))

	name, ok := s.Name(date(2025, time.October, 3))
	assert.True(t, ok)
	assert.Equal(t, "Tag der Deutschen Einheit", name)
}

func TestForYear_RegionalSubsets(t *testing.T) {
	by := ForYear(2025, RegionBY)
	be := ForYear(2025, RegionBE)
	sn := ForYear(2025, RegionSN)

	// Fronleichnam (19.06.2025) есть в Баварии, нет в Берлине
	corpusChristi := date(2025, time.June, 19)
	assert.True(t, by.Contains(corpusChristi))
	assert.False(t, be.Contains(corpusChristi))

	// Reformationstag есть в Саксонии, нет в Баварии
	reformation := date(2025, time.October, 31)
	assert.True(t, sn.Contains(reformation))
	assert.False(t, by.Contains(reformation))

	// Mariä Himmelfahrt только в BY и SL
	assumption := date(2025, time.August, 15)
	assert.True(t, by.Contains(assumption))
	assert.True(t, ForYear(2025, RegionSL).Contains(assumption))
	assert.False(t, sn.Contains(assumption))

	// Frauentag только в Берлине
	assert.True(t, be.Contains(date(2025, time.March, 8)))
	assert.False(t, by.Contains(date(2025, time.March, 8)))
}

func TestRepentanceDay(t *testing.T) {
	// среда строго перед 23 ноября
	assert.Equal(t, date(2024, time.November, 20), RepentanceDay(2024))
	assert.Equal(t, date(2025, time.November, 19), RepentanceDay(2025))
	assert.Equal(t, date(2026, time.November, 18), RepentanceDay(2026))

	// входит в набор только для Саксонии
	assert.True(t, ForYear(2024, RegionSN).Contains(date(2024, time.November, 20)))
	assert.False(t, ForYear(2024, RegionBW).Contains(date(2024, time.November, 20)))
}

func TestIsHoliday_OutsideYearSet(t *testing.T) {
	// обычный рабочий день - не праздник
	assert.False(t, IsHoliday(date(2025, time.October, 14), RegionBW))
}

func TestCountWorkingDays(t *testing.T) {
	// Неделя с Страстной пятницей 2025 (18.04) в BW:
	// пн 14.04 .. вс 20.04 - исключаются пятница (праздник) и воскресенье
	got := CountWorkingDays(date(2025, time.April, 14), date(2025, time.April, 20), RegionBW)
	assert.Equal(t, 5, got)

	// Обычная полная неделя: 6 рабочих дней
	got = CountWorkingDays(date(2025, time.October, 13), date(2025, time.October, 19), RegionBW)
	assert.Equal(t, 6, got)

	// Один день - воскресенье
	got = CountWorkingDays(date(2025, time.October, 19), date(2025, time.October, 19), RegionBW)
	assert.Equal(t, 0, got)
}

func TestForYear_Cached(t *testing.T) {
	a := ForYear(2030, RegionHH)
	b := ForYear(2030, RegionHH)
	assert.Equal(t, a, b)
}
