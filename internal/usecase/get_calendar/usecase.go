package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	directoryClient "github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	"github.com/salonhub/SH-AppointmentService/pkg/ptr"
)

// UseCase use case для обзора календаря магазина: вердикт открытия
// и праздничный статус каждого дня диапазона
type UseCase struct {
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryClient
	holidays        HolidayCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryClient,
	holidays HolidayCalendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		holidays:        holidays,
		logger:          logger,
	}
}

// Execute выполняет use case обзора календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: shop=%d, from=%s, to=%s",
		req.ShopID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин (регион нужен для календаря праздников)
	shop, err := uc.directoryClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrShopNotFound) {
			uc.logger.Warn("GetCalendar: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetCalendar: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}
	if !shop.Active {
		uc.logger.Warn("GetCalendar: shop id=%d is inactive", req.ShopID)
		return nil, ErrShopNotFound
	}

	// 3. Правила работы магазина на диапазон
	schedule, err := uc.scheduleRepo.GetSchedule(ctx, req.ShopID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to get schedule for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Обходим дни диапазона по порядку
	response := &Response{
		ShopID: req.ShopID,
		Region: shop.Region,
		From:   req.From,
		To:     req.To,
		Days:   make([]Day, 0, domain.DaysBetween(req.From, req.To)+1),
	}

	for date := domain.DateOnly(req.From); !date.After(domain.DateOnly(req.To)); date = date.AddDate(0, 0, 1) {
		day := Day{Date: date}

		if verdict := schedule.VerdictFor(date); verdict.Open {
			day.Open = true
			day.OpenTime = ptr.Ptr(verdict.OpenTime)
			day.CloseTime = ptr.Ptr(verdict.CloseTime)
			response.OpenDays++
		}

		if name, ok := uc.holidays.HolidayName(shop.Region, date); ok {
			day.Holiday = ptr.Ptr(name)
		}

		response.Days = append(response.Days, day)
	}

	// 5. Рабочие дни региона - справочная величина для планирования
	response.WorkingDays = uc.holidays.WorkingDays(shop.Region, req.From, req.To)

	uc.logger.Info("GetCalendar: %d days, %d open for shop=%d",
		len(response.Days), response.OpenDays, req.ShopID)

	return response, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if domain.DaysBetween(req.From, req.To)+1 > domain.MaxCalendarRangeDays {
		return fmt.Errorf("%w: at most %d days per request", ErrRangeTooLarge, domain.MaxCalendarRangeDays)
	}

	return nil
}
