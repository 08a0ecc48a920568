package cancel_appointment

import (
	"context"
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	// Cancel помечает запись отменённой; уже отменённая запись
	// возвращает ошибку репозитория
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason *string) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
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
