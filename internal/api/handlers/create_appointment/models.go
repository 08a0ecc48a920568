package create_appointment

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	createAppointment "github.com/salonhub/SH-AppointmentService/internal/usecase/create_appointment"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ShopID    int64  `json:"shopId"`
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"

	CustomerID    *int64  `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	Source *string `json:"source,omitempty"` // online | staff | series
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	ShopID    int64  `json:"shopId"`
	StaffID   int64  `json:"staffId"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	Status    string `json:"status"`
	Source    string `json:"source"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	ServiceName       string `json:"serviceName"`
	ServicePriceCents int64  `json:"servicePriceCents"`
	DurationMinutes   int    `json:"durationMinutes"`
	StaffName         string `json:"staffName"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		ShopID:        r.ShopID,
		StaffID:       r.StaffID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
	}

	if r.Source != nil {
		req.Source = domain.AppointmentSource(*r.Source)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		ShopID:    resp.ShopID,
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Status:    resp.Status,
		Source:    resp.Source,

		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,

		ServiceName:       resp.ServiceName,
		ServicePriceCents: resp.ServicePriceCents,
		DurationMinutes:   resp.DurationMinutes,
		StaffName:         resp.StaffName,

		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
