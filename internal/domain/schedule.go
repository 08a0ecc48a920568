package domain

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// OpeningHours расписание работы магазина на один день недели.
// Одна строка на (магазин, день недели).
type OpeningHours struct {
	ShopID    int64
	Weekday   time.Weekday // 0=воскресенье .. 6=суббота
	IsClosed  bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// ClosedDate разовая дата полного закрытия магазина
// (праздник, ремонт) - сильнее недельного расписания
type ClosedDate struct {
	ShopID int64
	Date   time.Time
	Reason *string
}

// OpenSundayException разовое исключение: обычно закрытое воскресенье
// открыто в конкретную дату со своими часами работы
type OpenSundayException struct {
	ShopID    int64
	Date      time.Time
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// TimeSlot каталожный слот магазина: перечислимое время начала услуги.
// Деактивация слота не влияет на уже созданные записи.
type TimeSlot struct {
	ID        int64
	ShopID    int64
	StartTime types.TimeString
	SortOrder int
	Active    bool
}

// StaffTimeOff отпуск мастера: включительный диапазон дат
type StaffTimeOff struct {
	ID        int64
	StaffID   int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
}

// Covers возвращает true, если дата попадает в диапазон отпуска (включительно)
func (t *StaffTimeOff) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(t.StartDate)) && !d.After(DateOnly(t.EndDate))
}

// OnLeave возвращает true, если хотя бы один отпуск покрывает дату
func OnLeave(ranges []StaffTimeOff, date time.Time) bool {
	for i := range ranges {
		if ranges[i].Covers(date) {
			return true
		}
	}
	return false
}

// DayVerdict результат применения правил закрытия на конкретную дату
type DayVerdict struct {
	Open      bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// ShopSchedule собранные правила работы магазина.
// Ключи карт - дата в формате DateFormat.
type ShopSchedule struct {
	Hours       map[time.Weekday]OpeningHours
	ClosedDates map[string]ClosedDate
	OpenSundays map[string]OpenSundayException
}

// VerdictFor применяет правила закрытия в строгом порядке приоритета
// (первое совпадение выигрывает):
//  1. Разовая дата закрытия - закрыто.
//  2. День недели помечен закрытым:
//     для воскресенья с исключением на эту дату - открыто по часам исключения,
//     иначе - закрыто.
//  3. Часы работы дня недели.
//
// Отсутствие строки расписания трактуется как закрытый день.
// Статус праздника на вердикт не влияет: магазин вправе работать в праздник.
func (s *ShopSchedule) VerdictFor(date time.Time) DayVerdict {
	key := DateOnly(date).Format(DateFormat)

	if _, ok := s.ClosedDates[key]; ok {
		return DayVerdict{Open: false}
	}

	hours, ok := s.Hours[date.Weekday()]
	if !ok || hours.IsClosed {
		if date.Weekday() == time.Sunday {
			if exc, found := s.OpenSundays[key]; found {
				return DayVerdict{Open: true, OpenTime: exc.OpenTime, CloseTime: exc.CloseTime}
			}
		}
		return DayVerdict{Open: false}
	}

	return DayVerdict{Open: true, OpenTime: hours.OpenTime, CloseTime: hours.CloseTime}
}

// DateOnly обнуляет время, сохраняя часовой пояс
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DaysBetween количество полных календарных дней от from до to.
// Считается по календарю (в UTC), чтобы переходы на летнее время
// не искажали разницу.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
