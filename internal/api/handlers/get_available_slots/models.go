package get_available_slots

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	getAvailableSlots "github.com/salonhub/SH-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string   `json:"date"`
	ShopID  int64    `json:"shopId"`
	StaffID int64    `json:"staffId"`
	Slots   []string `json:"slots"`
	Reason  *string  `json:"reason,omitempty"`  // staff_day_off | shop_closed | staff_on_leave
	Holiday *string  `json:"holiday,omitempty"` // название праздника, информационно
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		ShopID:  resp.ShopID,
		StaffID: resp.StaffID,
		Slots:   slots,
		Reason:  resp.Reason,
		Holiday: resp.Holiday,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(shopID, staffID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ShopID:  shopID,
		StaffID: staffID,
		Date:    date,
	}, nil
}
