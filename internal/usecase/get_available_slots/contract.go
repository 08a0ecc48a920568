package get_available_slots

import (
	"context"
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetBookedSlots получает времена начала активных записей мастера на дату
	GetBookedSlots(ctx context.Context, shopID, staffID int64, date time.Time) ([]types.TimeString, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSchedule(ctx context.Context, shopID int64, from, to time.Time) (*domain.ShopSchedule, error)
	GetActiveTimeSlots(ctx context.Context, shopID int64) ([]domain.TimeSlot, error)
	GetTimeOffForDate(ctx context.Context, staffID int64, date time.Time) ([]domain.StaffTimeOff, error)
	GetActiveSeries(ctx context.Context, staffID int64) ([]domain.RecurringSeries, error)
}

// DirectoryClient интерфейс клиента справочного сервиса
type DirectoryClient interface {
	GetShop(ctx context.Context, shopID int64) (*directory.Shop, error)
	GetStaff(ctx context.Context, shopID, staffID int64) (*directory.Staff, error)
}

// HolidayCalendar интерфейс календаря праздников
type HolidayCalendar interface {
	// HolidayName возвращает название праздника для региона магазина
	HolidayName(region string, date time.Time) (string, bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
