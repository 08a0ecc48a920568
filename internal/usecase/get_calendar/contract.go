package get_calendar

import (
	"context"
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, shopID int64, from, to time.Time) (*domain.ShopSchedule, error)
}

// DirectoryClient интерфейс клиента справочного сервиса
type DirectoryClient interface {
	GetShop(ctx context.Context, shopID int64) (*directory.Shop, error)
}

// HolidayCalendar интерфейс календаря праздников
type HolidayCalendar interface {
	HolidayName(region string, date time.Time) (string, bool)
	// WorkingDays считает рабочие дни региона в диапазоне:
	// все дни кроме воскресений и официальных праздников
	WorkingDays(region string, from, to time.Time) int
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
