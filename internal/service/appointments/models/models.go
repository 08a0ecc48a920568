package models

import (
	"errors"
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetCustomerAppointmentsRequest запрос на получение записей клиента
type GetCustomerAppointmentsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetShopAppointmentsRequest запрос на получение записей магазина
type GetShopAppointmentsRequest struct {
	ShopID           int64      `json:"shopId"`
	StaffID          *int64     `json:"staffId,omitempty"`          // Фильтр по мастеру (опционально)
	Date             *time.Time `json:"date,omitempty"`             // Конкретная дата (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetShopAppointmentsRequest) ToDomainFilter() (domain.ShopAppointmentsFilter, error) {
	filter := domain.ShopAppointmentsFilter{
		ShopID:           r.ShopID,
		StaffID:          r.StaffID,
		Date:             r.Date,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	ShopID     int64  `json:"shopId"`
	StaffID    int64  `json:"staffId"`
	ServiceID  int64  `json:"serviceId"`
	CustomerID *int64 `json:"customerId,omitempty"`
	SeriesID   *int64 `json:"seriesId,omitempty"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	Status    string `json:"status"`
	Source    string `json:"source"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	// Денормализованные данные
	ServiceName       string `json:"serviceName"`
	ServicePriceCents int64  `json:"servicePriceCents"`
	DurationMinutes   int    `json:"durationMinutes"`
	StaffName         string `json:"staffName"`

	CancelledBy  *string `json:"cancelledBy,omitempty"`
	CancelledAt  *string `json:"cancelledAt,omitempty"` // ISO 8601
	CancelReason *string `json:"cancelReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:         a.ID,
		ShopID:     a.ShopID,
		StaffID:    a.StaffID,
		ServiceID:  a.ServiceID,
		CustomerID: a.CustomerID,
		SeriesID:   a.SeriesID,

		Date:      a.Date.Format(domain.DateFormat),
		StartTime: a.StartTime.String(),
		Status:    string(a.Status),
		Source:    string(a.Source),

		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		CustomerEmail: a.CustomerEmail,

		ServiceName:       a.ServiceName,
		ServicePriceCents: a.ServicePriceCents,
		DurationMinutes:   a.DurationMinutes,
		StaffName:         a.StaffName,

		CancelReason: a.CancelReason,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}

	if a.CancelledBy != nil {
		by := string(*a.CancelledBy)
		resp.CancelledBy = &by
	}
	if a.CancelledAt != nil {
		at := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if resp := FromDomainAppointment(a); resp != nil {
			result.Appointments = append(result.Appointments, *resp)
		}
	}

	return result
}

// ToDomainAppointmentStatus конвертирует строку в статус записи
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}
