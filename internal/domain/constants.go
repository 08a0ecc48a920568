package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default policy values
const (
	// DefaultCancellationNoticeHours минимальное время до начала записи,
	// при котором клиент ещё может отменить её самостоятельно
	DefaultCancellationNoticeHours = 5
)

// Business validation constants
const (
	MaxCustomerNameLength = 200
	MaxCancelReasonLength = 500
	MaxCalendarRangeDays  = 62
)
