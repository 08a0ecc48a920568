package get_shop_appointments

import (
	"context"

	"github.com/salonhub/SH-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetShopAppointments(ctx context.Context, req *models.GetShopAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
