package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	appointmentRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/appointment"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
)

// UseCase use case для отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifierClient  NotifierClient
	noticeHours     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// noticeHours - минимальный срок до начала записи, в течение которого
// клиент ещё может отменить её самостоятельно.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	notifierClient NotifierClient,
	noticeHours int,
	logger Logger,
) *UseCase {
	if noticeHours <= 0 {
		noticeHours = domain.DefaultCancellationNoticeHours
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		notifierClient:  notifierClient,
		noticeHours:     noticeHours,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи.
// Окно отмены проверяется только для клиента: персонал и администратор
// отменяют запись в любой момент. Повторная отмена - отдельная ошибка,
// данные первой отмены не перезаписываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: id=%d, actor=%s", req.AppointmentID, req.Actor)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Уже отменённая запись - отдельный отказ
	if appointment.IsCancelled() {
		uc.logger.Warn("CancelAppointment: appointment id=%d is already cancelled", req.AppointmentID)
		return nil, ErrAlreadyCancelled
	}

	// 4. Окно отмены: запись, начинающаяся ровно через noticeHours,
	// ещё отменяема клиентом
	now := uc.timeProvider.Now()
	if req.Actor == domain.CancelledByCustomer && !appointment.WithinCancellationWindow(now, uc.noticeHours) {
		uc.logger.Warn("CancelAppointment: cancellation window closed for appointment id=%d", req.AppointmentID)
		return nil, ErrCancellationWindowClosed
	}

	// 5. Помечаем запись отменённой; проигрыш гонки двух отмен
	// возвращается как повторная отмена
	if err := uc.appointmentRepo.Cancel(ctx, req.AppointmentID, req.Actor, req.Reason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAlreadyCancelled) {
			uc.logger.Warn("CancelAppointment: appointment id=%d cancelled concurrently", req.AppointmentID)
			return nil, ErrAlreadyCancelled
		}
		uc.logger.Error("CancelAppointment: failed to cancel appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelAppointment: successfully cancelled appointment id=%d by %s", req.AppointmentID, req.Actor)

	// 6. Уведомление клиента - fire-and-forget
	uc.notifierClient.DispatchAsync(&notifier.Event{
		Type:          notifier.EventAppointmentCancelled,
		AppointmentID: appointment.ID,
		ShopID:        appointment.ShopID,
		CustomerName:  appointment.CustomerName,
		CustomerPhone: appointment.CustomerPhone,
		CustomerEmail: appointment.CustomerEmail,
		Date:          appointment.Date.Format(domain.DateFormat),
		StartTime:     appointment.StartTime.String(),
		ServiceName:   appointment.ServiceName,
		StaffName:     appointment.StaffName,
	})

	return &Response{
		ID:          appointment.ID,
		ShopID:      appointment.ShopID,
		StaffID:     appointment.StaffID,
		Date:        appointment.Date,
		StartTime:   appointment.StartTime,
		Status:      string(domain.StatusCancelled),
		CancelledBy: string(req.Actor),
		Reason:      req.Reason,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if !req.Actor.IsValid() {
		return fmt.Errorf("%w: unknown cancel actor %q", ErrInvalidInput, req.Actor)
	}

	if req.Reason != nil && len(strings.TrimSpace(*req.Reason)) > domain.MaxCancelReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	return nil
}
