package cancel_appointment

import (
	"github.com/salonhub/SH-AppointmentService/internal/domain"
	cancelAppointment "github.com/salonhub/SH-AppointmentService/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Actor  string  `json:"actor"` // customer | staff | admin
	Reason *string `json:"reason,omitempty"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	ID          int64   `json:"id"`
	ShopID      int64   `json:"shopId"`
	StaffID     int64   `json:"staffId"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	Status      string  `json:"status"`
	CancelledBy string  `json:"cancelledBy"`
	Reason      *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelAppointmentRequest) ToUseCaseRequest(appointmentID int64) *cancelAppointment.Request {
	return &cancelAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         domain.CancelActor(r.Actor),
		Reason:        r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		ID:          resp.ID,
		ShopID:      resp.ShopID,
		StaffID:     resp.StaffID,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		CancelledBy: resp.CancelledBy,
		Reason:      resp.Reason,
	}
}
