package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/pkg/psqlbuilder"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// Код PostgreSQL для нарушения уникального ограничения
const pqUniqueViolation = "23505"

var appointmentColumns = []string{
	"id",
	"shop_id",
	"staff_id",
	"service_id",
	"customer_id",
	"series_id",
	"appointment_date",
	"start_time",
	"status",
	"source",
	"customer_name",
	"customer_phone",
	"customer_email",
	"service_name",
	"service_price_cents",
	"duration_minutes",
	"staff_name",
	"cancelled_by",
	"cancelled_at",
	"cancel_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись.
// Конкурентная защита от двойного бронирования - частичный уникальный
// индекс по (shop_id, staff_id, appointment_date, start_time) для
// неотменённых строк. Нарушение индекса транслируется в ErrSlotTaken,
// никаких транзакций и блокировок на уровне приложения нет.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"shop_id",
			"staff_id",
			"service_id",
			"customer_id",
			"series_id",
			"appointment_date",
			"start_time",
			"status",
			"source",
			"customer_name",
			"customer_phone",
			"customer_email",
			"service_name",
			"service_price_cents",
			"duration_minutes",
			"staff_name",
		).
		Values(
			appointment.ShopID,
			appointment.StaffID,
			appointment.ServiceID,
			appointment.CustomerID,
			appointment.SeriesID,
			appointment.Date,
			appointment.StartTime,
			appointment.Status,
			appointment.Source,
			appointment.CustomerName,
			appointment.CustomerPhone,
			appointment.CustomerEmail,
			appointment.ServiceName,
			appointment.ServicePriceCents,
			appointment.DurationMinutes,
			appointment.StaffName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := r.scanAppointment(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// ExistsActive проверяет, занят ли слот активной записью.
// Используется как оптимистичная предпроверка перед вставкой:
// даёт понятный ответ в обычном случае, но не защищает от гонки -
// окончательное слово за уникальным индексом в Create.
func (r *Repository) ExistsActive(ctx context.Context, shopID, staffID int64, date time.Time, slot types.TimeString) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{
			"shop_id":          shopID,
			"staff_id":         staffID,
			"appointment_date": date,
			"start_time":       slot,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetBookedSlots получает времена начала всех активных записей мастера на дату
func (r *Repository) GetBookedSlots(ctx context.Context, shopID, staffID int64, date time.Time) ([]types.TimeString, error) {
	query, args, err := psqlbuilder.Select("start_time").
		From("appointments").
		Where(squirrel.Eq{
			"shop_id":          shopID,
			"staff_id":         staffID,
			"appointment_date": date,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan start_time: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByShopWithFilter получает записи магазина с гибкой фильтрацией.
// Поддерживает фильтрацию по мастеру, конкретной дате и статусу.
// По умолчанию отменённые записи не возвращаются.
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopAppointmentsFilter) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"shop_id": filter.ShopID})

	// Фильтрация по мастеру, если указан
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	// Фильтрация по конкретной дате
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_date": *filter.Date})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	// Для конкретной даты сортируем по времени начала,
	// для истории - сначала новые
	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShopWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// GetByCustomer получает список записей клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("appointment_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// Cancel отменяет запись с указанием инициатора и причины.
// Условие status <> 'cancelled' делает операцию идемпотентно-безопасной:
// повторная отмена не затирает данные первой и отличима по ErrAlreadyCancelled.
// Вызывающая сторона обязана предварительно убедиться, что запись существует.
func (r *Repository) Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason *string) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", actor).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancel_reason", reason).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyCancelled
	}

	return nil
}

// scanAppointment сканирует одну строку результата в запись
func (r *Repository) scanAppointment(row *sql.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.ShopID,
		&appointment.StaffID,
		&appointment.ServiceID,
		&appointment.CustomerID,
		&appointment.SeriesID,
		&appointment.Date,
		&appointment.StartTime,
		&appointment.Status,
		&appointment.Source,
		&appointment.CustomerName,
		&appointment.CustomerPhone,
		&appointment.CustomerEmail,
		&appointment.ServiceName,
		&appointment.ServicePriceCents,
		&appointment.DurationMinutes,
		&appointment.StaffName,
		&appointment.CancelledBy,
		&appointment.CancelledAt,
		&appointment.CancelReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appointment domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&appointment.ID,
			&appointment.ShopID,
			&appointment.StaffID,
			&appointment.ServiceID,
			&appointment.CustomerID,
			&appointment.SeriesID,
			&appointment.Date,
			&appointment.StartTime,
			&appointment.Status,
			&appointment.Source,
			&appointment.CustomerName,
			&appointment.CustomerPhone,
			&appointment.CustomerEmail,
			&appointment.ServiceName,
			&appointment.ServicePriceCents,
			&appointment.DurationMinutes,
			&appointment.StaffName,
			&appointment.CancelledBy,
			&appointment.CancelledAt,
			&appointment.CancelReason,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appointment.CreatedAt = createdAt.Time
		appointment.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
