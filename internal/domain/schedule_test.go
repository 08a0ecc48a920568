package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// расписание: пн-сб 10:00-19:00, воскресенье закрыто
func testSchedule() *ShopSchedule {
	hours := make(map[time.Weekday]OpeningHours)
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		hours[wd] = OpeningHours{
			Weekday:   wd,
			OpenTime:  types.TimeString("10:00"),
			CloseTime: types.TimeString("19:00"),
		}
	}
	hours[time.Sunday] = OpeningHours{Weekday: time.Sunday, IsClosed: true}

	return &ShopSchedule{
		Hours:       hours,
		ClosedDates: map[string]ClosedDate{},
		OpenSundays: map[string]OpenSundayException{},
	}
}

func TestShopSchedule_VerdictFor_RegularWeekday(t *testing.T) {
	s := testSchedule()
	// 2025-10-14 - вторник
	verdict := s.VerdictFor(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC))

	assert.True(t, verdict.Open)
	assert.Equal(t, types.TimeString("10:00"), verdict.OpenTime)
	assert.Equal(t, types.TimeString("19:00"), verdict.CloseTime)
}

func TestShopSchedule_VerdictFor_ClosedDateWinsOverOpenWeekday(t *testing.T) {
	s := testSchedule()
	tuesday := time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)
	s.ClosedDates[tuesday.Format(DateFormat)] = ClosedDate{Date: tuesday}

	assert.False(t, s.VerdictFor(tuesday).Open)
}

func TestShopSchedule_VerdictFor_ClosedSunday(t *testing.T) {
	s := testSchedule()
	// 2025-10-19 - воскресенье
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.False(t, s.VerdictFor(sunday).Open)
}

func TestShopSchedule_VerdictFor_OpenSundayException(t *testing.T) {
	s := testSchedule()
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	s.OpenSundays[sunday.Format(DateFormat)] = OpenSundayException{
		Date:      sunday,
		OpenTime:  types.TimeString("12:00"),
		CloseTime: types.TimeString("17:00"),
	}

	verdict := s.VerdictFor(sunday)
	assert.True(t, verdict.Open)
	assert.Equal(t, types.TimeString("12:00"), verdict.OpenTime)

	// исключение действует только на свою дату
	assert.False(t, s.VerdictFor(sunday.AddDate(0, 0, 7)).Open)
}

func TestShopSchedule_VerdictFor_ClosedDateWinsOverSundayException(t *testing.T) {
	s := testSchedule()
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
	key := sunday.Format(DateFormat)
	s.OpenSundays[key] = OpenSundayException{Date: sunday, OpenTime: "12:00", CloseTime: "17:00"}
	s.ClosedDates[key] = ClosedDate{Date: sunday}

	assert.False(t, s.VerdictFor(sunday).Open)
}

func TestShopSchedule_VerdictFor_MissingRowIsClosed(t *testing.T) {
	s := testSchedule()
	delete(s.Hours, time.Tuesday)

	assert.False(t, s.VerdictFor(time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC)).Open)
}

func TestStaffTimeOff_Covers(t *testing.T) {
	off := StaffTimeOff{
		StartDate: time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
	}

	// границы диапазона включительны
	assert.True(t, off.Covers(time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, off.Covers(time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, off.Covers(time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)))

	assert.False(t, off.Covers(time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, off.Covers(time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)))
}

func TestOnLeave(t *testing.T) {
	ranges := []StaffTimeOff{
		{StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)},
		{StartDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)},
	}

	assert.True(t, OnLeave(ranges, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, OnLeave(ranges, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, OnLeave(ranges, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, OnLeave(nil, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(from, from))
	assert.Equal(t, 7, DaysBetween(from, from.AddDate(0, 0, 7)))
	assert.Equal(t, 14, DaysBetween(from, from.AddDate(0, 0, 14)))
}
