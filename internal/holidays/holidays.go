package holidays

import (
	"sync"
	"time"
)

const dateFormat = "2006-01-02"

// Region код федеральной земли (закрытое перечисление).
// Регион магазина определяет его календарь официальных праздников.
type Region string

const (
	RegionBW Region = "BW" // Баден-Вюртемберг
	RegionBY Region = "BY" // Бавария
	RegionBE Region = "BE" // Берлин
	RegionBB Region = "BB" // Бранденбург
	RegionHB Region = "HB" // Бремен
	RegionHH Region = "HH" // Гамбург
	RegionHE Region = "HE" // Гессен
	RegionMV Region = "MV" // Мекленбург-Передняя Померания
	RegionNI Region = "NI" // Нижняя Саксония
	RegionNW Region = "NW" // Северный Рейн-Вестфалия
	RegionRP Region = "RP" // Рейнланд-Пфальц
	RegionSL Region = "SL" // Саар
	RegionSN Region = "SN" // Саксония
	RegionST Region = "ST" // Саксония-Анхальт
	RegionSH Region = "SH" // Шлезвиг-Гольштейн
	RegionTH Region = "TH" // Тюрингия
)

// Set праздники одного года для одного региона.
// Ключ - дата в формате YYYY-MM-DD, значение - название праздника.
type Set map[string]string

// Contains возвращает true, если дата - официальный праздник
func (s Set) Contains(date time.Time) bool {
	_, ok := s[date.Format(dateFormat)]
	return ok
}

// Name возвращает название праздника на дату
func (s Set) Name(date time.Time) (string, bool) {
	name, ok := s[date.Format(dateFormat)]
	return name, ok
}

type cacheKey struct {
	year   int
	region Region
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[cacheKey]Set)
)

// ForYear вычисляет официальные праздники года для региона.
// Набор детерминирован и не зависит от других лет, поэтому кешируется.
// Дата вне вычисленного года просто не является праздником этого набора:
// при проверке диапазона вызывающий обязан запросить каждый затронутый год.
func ForYear(year int, region Region) Set {
	key := cacheKey{year: year, region: region}

	cacheMu.RLock()
	if s, ok := cache[key]; ok {
		cacheMu.RUnlock()
		return s
	}
	cacheMu.RUnlock()

	s := computeYear(year, region)

	cacheMu.Lock()
	cache[key] = s
	cacheMu.Unlock()

	return s
}

// IsHoliday возвращает true, если date - праздник в регионе
func IsHoliday(date time.Time, region Region) bool {
	return ForYear(date.Year(), region).Contains(date)
}

// Calendar адаптер над функциями пакета для внедрения в usecase-ы
type Calendar struct{}

// HolidayName возвращает название праздника на дату для региона.
// Статус праздника информационный: он никогда не влияет на закрытие магазина.
func (Calendar) HolidayName(region string, date time.Time) (string, bool) {
	return ForYear(date.Year(), Region(region)).Name(date)
}

// WorkingDays считает рабочие дни региона в диапазоне [from, to]
func (Calendar) WorkingDays(region string, from, to time.Time) int {
	return CountWorkingDays(from, to, Region(region))
}

func computeYear(year int, region Region) Set {
	easter := EasterSunday(year)
	s := make(Set)

	add := func(d time.Time, name string) {
		s[d.Format(dateFormat)] = name
	}
	fixed := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	// Общефедеральные праздники
	add(fixed(time.January, 1), "Neujahr")
	add(easter.AddDate(0, 0, -2), "Karfreitag")
	add(easter.AddDate(0, 0, 1), "Ostermontag")
	add(fixed(time.May, 1), "Tag der Arbeit")
	add(easter.AddDate(0, 0, 39), "Christi Himmelfahrt")
	add(easter.AddDate(0, 0, 50), "Pfingstmontag")
	add(fixed(time.October, 3), "Tag der Deutschen Einheit")
	add(fixed(time.December, 25), "1. Weihnachtstag")
	add(fixed(time.December, 26), "2. Weihnachtstag")

	epiphany := func() { add(fixed(time.January, 6), "Heilige Drei Könige") }
	corpusChristi := func() { add(easter.AddDate(0, 0, 60), "Fronleichnam") }
	assumption := func() { add(fixed(time.August, 15), "Mariä Himmelfahrt") }
	reformation := func() { add(fixed(time.October, 31), "Reformationstag") }
	allSaints := func() { add(fixed(time.November, 1), "Allerheiligen") }

	// Региональные праздники
	switch region {
	case RegionBW:
		epiphany()
		corpusChristi()
		allSaints()
	case RegionBY:
		epiphany()
		corpusChristi()
		assumption()
		allSaints()
	case RegionBE:
		add(fixed(time.March, 8), "Internationaler Frauentag")
	case RegionBB, RegionHB, RegionHH, RegionMV, RegionNI, RegionSH:
		reformation()
	case RegionHE:
		corpusChristi()
	case RegionNW, RegionRP:
		corpusChristi()
		allSaints()
	case RegionSL:
		corpusChristi()
		assumption()
		allSaints()
	case RegionSN:
		reformation()
		add(RepentanceDay(year), "Buß- und Bettag")
	case RegionST:
		epiphany()
		reformation()
	case RegionTH:
		reformation()
		add(fixed(time.September, 20), "Weltkindertag")
	default:
		// Неизвестный регион получает только общефедеральный набор
	}

	return s
}

// EasterSunday вычисляет дату пасхального воскресенья по григорианскому
// календарю (анонимный алгоритм Гаусса)
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// RepentanceDay день покаяния и молитвы: среда строго перед 23 ноября
func RepentanceDay(year int) time.Time {
	d := time.Date(year, time.November, 22, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Wednesday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// CountWorkingDays количество рабочих дней в диапазоне [from..to]
// включительно: исключаются воскресенья и официальные праздники региона.
// Бизнес-конвенция для отображения - на фактическое закрытие магазина
// не влияет. Праздники берутся по каждому затронутому году.
func CountWorkingDays(from, to time.Time, region Region) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		if IsHoliday(d, region) {
			continue
		}
		count++
	}
	return count
}
