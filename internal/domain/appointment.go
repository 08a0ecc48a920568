package domain

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentSource tags who created the appointment (reporting only,
// not load-bearing for correctness)
type AppointmentSource string

const (
	SourceOnline AppointmentSource = "online"
	SourceStaff  AppointmentSource = "staff"
	SourceSeries AppointmentSource = "series"
)

// CancelActor identifies who cancelled an appointment
type CancelActor string

const (
	CancelledByCustomer CancelActor = "customer"
	CancelledByStaff    CancelActor = "staff"
	CancelledByAdmin    CancelActor = "admin"
)

// IsValid returns true for a known cancel actor
func (a CancelActor) IsValid() bool {
	return a == CancelledByCustomer || a == CancelledByStaff || a == CancelledByAdmin
}

// Appointment represents a single booked slot: (shop, staff, date, time slot)
// plus the customer contact payload. A cancelled appointment keeps its row -
// history is never physically deleted by normal flow.
type Appointment struct {
	ID         int64
	ShopID     int64
	StaffID    int64
	ServiceID  int64
	CustomerID *int64 // связь с карточкой клиента (nil для walk-in)
	SeriesID   *int64 // связь с породившей серией, если запись создана из абонемента

	Date      time.Time
	StartTime types.TimeString
	Status    AppointmentStatus
	Source    AppointmentSource

	// Контактные данные клиента
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string

	// Denormalized data for history
	ServiceName       string
	ServicePriceCents int64
	DurationMinutes   int
	StaffName         string

	CancelledBy  *CancelActor
	CancelledAt  *time.Time
	CancelReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// StartsAt returns the absolute start instant (date + slot time, shop-local)
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.OnDate(a.Date)
}

// WithinCancellationWindow reports whether self-service cancellation is still
// allowed: the appointment must start no less than noticeHours from now.
// An appointment starting exactly noticeHours from now is still cancellable.
func (a *Appointment) WithinCancellationWindow(now time.Time, noticeHours int) bool {
	start, err := a.StartsAt()
	if err != nil {
		return false
	}
	return start.Sub(now) >= time.Duration(noticeHours)*time.Hour
}

// ShopAppointmentsFilter фильтр для выборки записей магазина
type ShopAppointmentsFilter struct {
	ShopID           int64              // Обязательный параметр
	StaffID          *int64             // Фильтр по мастеру (опционально)
	Date             *time.Time         // Конкретная дата (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool               // Включать ли отменённые записи
}
