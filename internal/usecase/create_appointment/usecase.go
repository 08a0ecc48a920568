package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	appointmentRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/appointment"
	directoryClient "github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryClient
	notifierClient  NotifierClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryClient,
	notifierClient NotifierClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		notifierClient:  notifierClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Двойное бронирование предотвращает частичный уникальный индекс БД:
// транзакций и блокировок на уровне приложения нет, предпроверка
// занятости слота только оптимистичная. Закрытие магазина и отпуск
// мастера повторно не проверяются, слот валидируется выдачей доступности.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: shop=%d, staff=%d, service=%d, date=%s, time=%s",
		req.ShopID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Прошедшая дата отклоняется до обращения к справочнику
	now := uc.timeProvider.Now()
	if err := validateDateNotInPast(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем магазин
	shop, err := uc.directoryClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrShopNotFound) {
			uc.logger.Warn("CreateAppointment: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	if !shop.Active {
		uc.logger.Warn("CreateAppointment: shop id=%d is inactive", req.ShopID)
		return nil, ErrShopNotFound
	}

	// 4. Получаем мастера
	staff, err := uc.directoryClient.GetStaff(ctx, req.ShopID, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found in shop id=%d", req.StaffID, req.ShopID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("CreateAppointment: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 5. Получаем услугу
	service, err := uc.directoryClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found in shop id=%d", req.ServiceID, req.ShopID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 6. Оптимистичная предпроверка занятости слота: даёт понятный отказ
	// в обычном случае, гонку разрешает индекс на шаге 8
	taken, err := uc.appointmentRepo.ExistsActive(ctx, req.ShopID, req.StaffID, req.Date, req.StartTime)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to pre-check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to pre-check slot: %v", ErrInternal, err)
	}
	if taken {
		uc.logger.Warn("CreateAppointment: slot %s %s already taken for staff id=%d",
			req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)
		return nil, ErrSlotTaken
	}

	// 7. Собираем запись с денормализацией данных услуги и мастера
	source := req.Source
	if source == "" {
		source = domain.SourceOnline
	}

	appointment := &domain.Appointment{
		ShopID:     req.ShopID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		Status:     domain.StatusConfirmed,
		Source:     source,

		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,

		ServiceName:       service.Name,
		ServicePriceCents: service.PriceCents,
		DurationMinutes:   service.DurationMinutes,
		StaffName:         staff.Name,
	}

	// 8. Вставка под защитой уникального индекса
	created, err := uc.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: lost slot race for %s %s, staff id=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)

	// Время окончания информационное: слот не блокируется на длительность.
	// Переход через полночь оставляет поле пустым
	endTime, err := created.StartTime.AddMinutes(created.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: cannot compute end time for id=%d: %v", created.ID, err)
	}

	// 9. Уведомление клиента - fire-and-forget
	uc.notifierClient.DispatchAsync(&notifier.Event{
		Type:          notifier.EventAppointmentConfirmed,
		AppointmentID: created.ID,
		ShopID:        shop.ID,
		CustomerName:  created.CustomerName,
		CustomerPhone: created.CustomerPhone,
		CustomerEmail: created.CustomerEmail,
		Date:          created.Date.Format(domain.DateFormat),
		StartTime:     created.StartTime.String(),
		ServiceName:   created.ServiceName,
		StaffName:     created.StaffName,
	})

	return &Response{
		ID:        created.ID,
		ShopID:    created.ShopID,
		StaffID:   created.StaffID,
		ServiceID: created.ServiceID,
		Date:      created.Date,
		StartTime: created.StartTime,
		EndTime:   endTime,
		Status:    string(created.Status),
		Source:    string(created.Source),

		CustomerName:  created.CustomerName,
		CustomerPhone: created.CustomerPhone,
		CustomerEmail: created.CustomerEmail,

		ServiceName:       created.ServiceName,
		ServicePriceCents: created.ServicePriceCents,
		DurationMinutes:   created.DurationMinutes,
		StaffName:         created.StaffName,

		CreatedAt: created.CreatedAt,
		UpdatedAt: created.UpdatedAt,
	}, nil
}
