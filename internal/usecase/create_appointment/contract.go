package create_appointment

import (
	"context"
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// Create вставляет запись; занятый слот транслируется в ошибку
	// нарушения уникального индекса
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	// ExistsActive оптимистичная предпроверка занятости слота
	ExistsActive(ctx context.Context, shopID, staffID int64, date time.Time, slot types.TimeString) (bool, error)
}

// DirectoryClient интерфейс клиента справочного сервиса
type DirectoryClient interface {
	GetShop(ctx context.Context, shopID int64) (*directory.Shop, error)
	GetStaff(ctx context.Context, shopID, staffID int64) (*directory.Staff, error)
	GetService(ctx context.Context, shopID, serviceID int64) (*directory.Service, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	// DispatchAsync отправляет событие в фоне, ошибки доставки
	// не влияют на результат бронирования
	DispatchAsync(event *notifier.Event)
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
