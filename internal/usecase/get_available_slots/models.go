package get_available_slots

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// Коды причин недоступности дня. Проверки выполняются строго в этом
// порядке, возвращается первая сработавшая причина.
const (
	ReasonStaffDayOff  = "staff_day_off"
	ReasonShopClosed   = "shop_closed"
	ReasonStaffOnLeave = "staff_on_leave"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID  int64     // ID магазина
	StaffID int64     // ID мастера
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date    time.Time          // Дата, на которую запрашивались слоты
	ShopID  int64              // ID магазина
	StaffID int64              // ID мастера
	Slots   []types.TimeString // Свободные времена начала из каталога магазина
	Reason  *string            // Причина пустого дня (nil, если день рабочий)
	Holiday *string            // Название праздника в регионе магазина (информационно)
}
