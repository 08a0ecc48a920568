package create_appointment

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/internal/domain"
	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ShopID    int64            // ID магазина
	StaffID   int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	CustomerID    *int64  // Карточка клиента (nil для walk-in)
	CustomerName  string  // Имя клиента (обязательно)
	CustomerPhone *string // Телефон (опционально)
	CustomerEmail *string // Email (опционально)

	Source domain.AppointmentSource // Источник записи; пустое значение трактуется как online
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64            // ID созданной записи
	ShopID    int64            // ID магазина
	StaffID   int64            // ID мастера
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата записи
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Расчетное время окончания (начало + длительность услуги)
	Status    string           // Статус записи
	Source    string           // Источник записи

	CustomerName  string  // Имя клиента
	CustomerPhone *string // Телефон
	CustomerEmail *string // Email

	// Денормализованные данные для истории
	ServiceName       string // Название услуги
	ServicePriceCents int64  // Цена услуги на момент записи
	DurationMinutes   int    // Длительность услуги
	StaffName         string // Имя мастера

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
