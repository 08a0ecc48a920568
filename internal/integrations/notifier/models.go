package notifier

// EventType тип события уведомления
type EventType string

const (
	EventAppointmentConfirmed EventType = "appointment_confirmed"
	EventAppointmentCancelled EventType = "appointment_cancelled"
)

// Event событие для сервиса уведомлений.
// Доставка (email/SMS) - зона ответственности сервиса уведомлений,
// здесь только полезная нагрузка для шаблона сообщения.
type Event struct {
	EventID       string    `json:"eventId"`
	Type          EventType `json:"type"`
	AppointmentID int64     `json:"appointmentId"`
	ShopID        int64     `json:"shopId"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	Date          string    `json:"date"`      // YYYY-MM-DD
	StartTime     string    `json:"startTime"` // HH:MM
	ServiceName   string    `json:"serviceName"`
	StaffName     string    `json:"staffName"`
}
