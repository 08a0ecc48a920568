package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписанием магазинов:
// часы работы, разовые закрытия, рабочие воскресенья, каталог слотов,
// отпуска мастеров и повторяющиеся серии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSchedule собирает правила работы магазина на диапазон дат [from, to].
// Недельное расписание читается целиком, разовые исключения - только
// попадающие в диапазон.
func (r *Repository) GetSchedule(ctx context.Context, shopID int64, from, to time.Time) (*domain.ShopSchedule, error) {
	schedule := &domain.ShopSchedule{
		Hours:       make(map[time.Weekday]domain.OpeningHours),
		ClosedDates: make(map[string]domain.ClosedDate),
		OpenSundays: make(map[string]domain.OpenSundayException),
	}

	if err := r.loadOpeningHours(ctx, shopID, schedule); err != nil {
		return nil, err
	}
	if err := r.loadClosedDates(ctx, shopID, from, to, schedule); err != nil {
		return nil, err
	}
	if err := r.loadOpenSundays(ctx, shopID, from, to, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

// GetActiveTimeSlots получает активный каталог слотов магазина
// в порядке сортировки
func (r *Repository) GetActiveTimeSlots(ctx context.Context, shopID int64) ([]domain.TimeSlot, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"shop_id",
		"start_time",
		"sort_order",
		"active",
	).
		From("shop_time_slots").
		Where(squirrel.Eq{"shop_id": shopID, "active": true}).
		OrderBy("sort_order ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimeSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimeSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		err := rows.Scan(
			&slot.ID,
			&slot.ShopID,
			&slot.StartTime,
			&slot.SortOrder,
			&slot.Active,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveTimeSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveTimeSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetTimeOffForDate получает отпуска мастера, покрывающие дату.
// Границы диапазона отпуска включительные.
func (r *Repository) GetTimeOffForDate(ctx context.Context, staffID int64, date time.Time) ([]domain.StaffTimeOff, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_date",
		"end_date",
		"reason",
	).
		From("staff_time_off").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOffForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOffForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]domain.StaffTimeOff, 0)
	for rows.Next() {
		var timeOff domain.StaffTimeOff
		err := rows.Scan(
			&timeOff.ID,
			&timeOff.StaffID,
			&timeOff.StartDate,
			&timeOff.EndDate,
			&timeOff.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTimeOffForDate - scan row: %v", ErrScanRow, err)
		}
		ranges = append(ranges, timeOff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeOffForDate - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// GetActiveSeries получает активные повторяющиеся серии мастера.
// Вхождения серии не хранятся, проверка попадания на дату выполняется
// на стороне домена.
func (r *Repository) GetActiveSeries(ctx context.Context, staffID int64) ([]domain.RecurringSeries, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"shop_id",
		"staff_id",
		"service_id",
		"weekday",
		"start_time",
		"series_interval",
		"interval_weeks",
		"start_date",
		"end_date",
		"customer_name",
		"active",
		"created_at",
		"updated_at",
	).
		From("recurring_series").
		Where(squirrel.Eq{"staff_id": staffID, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSeries - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveSeries - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	series := make([]domain.RecurringSeries, 0)
	for rows.Next() {
		var s domain.RecurringSeries
		err := rows.Scan(
			&s.ID,
			&s.ShopID,
			&s.StaffID,
			&s.ServiceID,
			&s.Weekday,
			&s.StartTime,
			&s.Interval,
			&s.IntervalWeeks,
			&s.StartDate,
			&s.EndDate,
			&s.CustomerName,
			&s.Active,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveSeries - scan row: %v", ErrScanRow, err)
		}
		series = append(series, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveSeries - rows error: %v", ErrScanRow, err)
	}

	return series, nil
}

// loadOpeningHours читает недельное расписание магазина
func (r *Repository) loadOpeningHours(ctx context.Context, shopID int64, schedule *domain.ShopSchedule) error {
	query, args, err := psqlbuilder.Select(
		"shop_id",
		"weekday",
		"is_closed",
		"open_time",
		"close_time",
	).
		From("shop_opening_hours").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadOpeningHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadOpeningHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var hours domain.OpeningHours
		var weekday int
		err := rows.Scan(
			&hours.ShopID,
			&weekday,
			&hours.IsClosed,
			&hours.OpenTime,
			&hours.CloseTime,
		)
		if err != nil {
			return fmt.Errorf("%w: loadOpeningHours - scan row: %v", ErrScanRow, err)
		}
		hours.Weekday = time.Weekday(weekday)
		schedule.Hours[hours.Weekday] = hours
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadOpeningHours - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// loadClosedDates читает разовые даты закрытия магазина в диапазоне
func (r *Repository) loadClosedDates(ctx context.Context, shopID int64, from, to time.Time, schedule *domain.ShopSchedule) error {
	query, args, err := psqlbuilder.Select(
		"shop_id",
		"closed_date",
		"reason",
	).
		From("shop_closed_dates").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.GtOrEq{"closed_date": from}).
		Where(squirrel.LtOrEq{"closed_date": to}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadClosedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadClosedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var closed domain.ClosedDate
		err := rows.Scan(
			&closed.ShopID,
			&closed.Date,
			&closed.Reason,
		)
		if err != nil {
			return fmt.Errorf("%w: loadClosedDates - scan row: %v", ErrScanRow, err)
		}
		schedule.ClosedDates[closed.Date.Format(domain.DateFormat)] = closed
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadClosedDates - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// loadOpenSundays читает рабочие воскресенья магазина в диапазоне
func (r *Repository) loadOpenSundays(ctx context.Context, shopID int64, from, to time.Time, schedule *domain.ShopSchedule) error {
	query, args, err := psqlbuilder.Select(
		"shop_id",
		"open_date",
		"open_time",
		"close_time",
	).
		From("shop_open_sundays").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.GtOrEq{"open_date": from}).
		Where(squirrel.LtOrEq{"open_date": to}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadOpenSundays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadOpenSundays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var exc domain.OpenSundayException
		err := rows.Scan(
			&exc.ShopID,
			&exc.Date,
			&exc.OpenTime,
			&exc.CloseTime,
		)
		if err != nil {
			return fmt.Errorf("%w: loadOpenSundays - scan row: %v", ErrScanRow, err)
		}
		schedule.OpenSundays[exc.Date.Format(domain.DateFormat)] = exc
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadOpenSundays - rows error: %v", ErrScanRow, err)
	}

	return nil
}
