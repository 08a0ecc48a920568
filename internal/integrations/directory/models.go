package directory

// Shop магазин (салон) из справочного сервиса
type Shop struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"` // код федеральной земли для календаря праздников
	Active bool   `json:"active"`
}

// Staff мастер магазина
type Staff struct {
	ID     int64  `json:"id"`
	ShopID int64  `json:"shopId"`
	Name   string `json:"name"`
	// FreeDay еженедельный выходной мастера: 0=воскресенье .. 6=суббота.
	// nil - фиксированного выходного нет. Не путать с отпуском:
	// выходной безусловен и не имеет диапазона дат.
	FreeDay *int `json:"freeDay,omitempty"`
	Active  bool `json:"active"`
}

// Service услуга магазина
type Service struct {
	ID              int64  `json:"id"`
	ShopID          int64  `json:"shopId"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	PriceCents      int64  `json:"priceCents"` // цена в минорных единицах валюты
	Active          bool   `json:"active"`
}
