package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	directoryClient "github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/pkg/ptr"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных слотов записи к мастеру
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryClient
	holidays        HolidayCalendar
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryClient,
	holidays HolidayCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		holidays:        holidays,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Проверки дня выполняются в строгом порядке: выходной мастера,
// закрытие магазина, отпуск мастера. Первая сработавшая причина
// возвращается без вычисления слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, staff=%d, date=%s",
		req.ShopID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем магазин
	shop, err := uc.directoryClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	if !shop.Active {
		uc.logger.Warn("GetAvailableSlots: shop id=%d is inactive", req.ShopID)
		return nil, ErrShopNotFound
	}

	// 4. Получаем мастера
	staff, err := uc.directoryClient.GetStaff(ctx, req.ShopID, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in shop id=%d", req.StaffID, req.ShopID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is inactive in shop id=%d", req.StaffID, req.ShopID)
		return nil, ErrStaffNotFound
	}

	// 5. Праздничный статус даты - чисто информационный,
	// на доступность не влияет
	response := &Response{
		Date:    req.Date,
		ShopID:  req.ShopID,
		StaffID: req.StaffID,
		Slots:   []types.TimeString{},
	}
	if name, ok := uc.holidays.HolidayName(shop.Region, req.Date); ok {
		response.Holiday = ptr.Ptr(name)
	}

	// 6. Прошедшая дата: пустой список слотов без причины
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 7. Еженедельный выходной мастера
	if staff.FreeDay != nil && *staff.FreeDay == int(req.Date.Weekday()) {
		uc.logger.Info("GetAvailableSlots: staff id=%d has day off on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		response.Reason = ptr.Ptr(ReasonStaffDayOff)
		return response, nil
	}

	// 8. Правила закрытия магазина
	schedule, err := uc.scheduleRepo.GetSchedule(ctx, req.ShopID, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if verdict := schedule.VerdictFor(req.Date); !verdict.Open {
		uc.logger.Info("GetAvailableSlots: shop id=%d is closed on %s", req.ShopID, req.Date.Format(domain.DateFormat))
		response.Reason = ptr.Ptr(ReasonShopClosed)
		return response, nil
	}

	// 9. Отпуск мастера
	timeOff, err := uc.scheduleRepo.GetTimeOffForDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time off for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}
	if domain.OnLeave(timeOff, req.Date) {
		uc.logger.Info("GetAvailableSlots: staff id=%d is on leave on %s", req.StaffID, req.Date.Format(domain.DateFormat))
		response.Reason = ptr.Ptr(ReasonStaffOnLeave)
		return response, nil
	}

	// 10. Каталог слотов магазина
	catalog, err := uc.scheduleRepo.GetActiveTimeSlots(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get time slots for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get time slots: %v", ErrInternal, err)
	}

	// 11. Занятые слоты: активные записи мастера на дату
	booked, err := uc.appointmentRepo.GetBookedSlots(ctx, req.ShopID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	// 12. Вхождения повторяющихся серий мастера
	series, err := uc.scheduleRepo.GetActiveSeries(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get series for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get series: %v", ErrInternal, err)
	}

	// 13. Каталог минус занятое, с отсечкой прошедших слотов сегодня
	response.Slots = resolveFreeSlots(catalog, booked, series, req.Date, now)

	uc.logger.Info("GetAvailableSlots: %d free slots for shop=%d, staff=%d, date=%s",
		len(response.Slots), req.ShopID, req.StaffID, req.Date.Format(domain.DateFormat))

	return response, nil
}
