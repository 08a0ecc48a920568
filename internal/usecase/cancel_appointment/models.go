package cancel_appointment

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// Request модель запроса на отмену записи
type Request struct {
	AppointmentID int64              // ID записи
	Actor         domain.CancelActor // Кто отменяет: customer, staff или admin
	Reason        *string            // Причина отмены (опционально)
}

// Response модель ответа с отменённой записью
type Response struct {
	ID          int64            // ID записи
	ShopID      int64            // ID магазина
	StaffID     int64            // ID мастера
	Date        time.Time        // Дата записи
	StartTime   types.TimeString // Время начала
	Status      string           // Статус записи после отмены
	CancelledBy string           // Кто отменил
	Reason      *string          // Причина отмены
}
