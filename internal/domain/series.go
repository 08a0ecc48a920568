package domain

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// SeriesInterval периодичность повторяющейся серии
type SeriesInterval string

const (
	IntervalWeekly   SeriesInterval = "weekly"
	IntervalBiweekly SeriesInterval = "biweekly"
	IntervalMonthly  SeriesInterval = "monthly"
	IntervalCustom   SeriesInterval = "custom"
)

// RecurringSeries повторяющаяся бронь мастера: шаблон, занимающий слот
// по периодическому расписанию. Отдельные вхождения серии вычисляются,
// никогда не хранятся.
type RecurringSeries struct {
	ID        int64
	ShopID    int64
	StaffID   int64
	ServiceID int64

	Weekday       int // 1=понедельник .. 7=воскресенье
	StartTime     types.TimeString
	Interval      SeriesInterval
	IntervalWeeks *int // явное количество недель для Interval=custom
	StartDate     time.Time
	EndDate       *time.Time

	CustomerName string
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// intervalWeeks возвращает шаг серии в неделях: явное значение,
// иначе 2 для biweekly, 4 для monthly, 1 для weekly
func (s *RecurringSeries) intervalWeeks() int {
	if s.IntervalWeeks != nil && *s.IntervalWeeks > 0 {
		return *s.IntervalWeeks
	}
	switch s.Interval {
	case IntervalBiweekly:
		return 2
	case IntervalMonthly:
		return 4
	default:
		return 1
	}
}

// OccupiesSlot возвращает true, если серия занимает слот slot на дату date.
// Вызывается спекулятивно на каждый слот каждого запроса доступности -
// функция чистая, без побочных эффектов.
func (s *RecurringSeries) OccupiesSlot(date time.Time, slot types.TimeString) bool {
	day := DateOnly(date)
	start := DateOnly(s.StartDate)

	if start.After(day) {
		return false
	}
	if s.EndDate != nil && DateOnly(*s.EndDate).Before(day) {
		return false
	}
	if ISOWeekday(day) != s.Weekday {
		return false
	}

	if iw := s.intervalWeeks(); iw > 1 {
		// Целое количество недель между якорной датой и date
		weeks := DaysBetween(start, day) / 7
		if weeks%iw != 0 {
			return false
		}
	}

	return s.StartTime == slot
}

// ISOWeekday день недели с понедельником = 1 (воскресенье = 7)
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
