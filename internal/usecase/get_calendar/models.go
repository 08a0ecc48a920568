package get_calendar

import (
	"time"

	"github.com/salonhub/SH-AppointmentService/pkg/types"
)

// Request модель запроса обзора календаря магазина
type Request struct {
	ShopID int64     // ID магазина
	From   time.Time // Начало диапазона (включительно)
	To     time.Time // Конец диапазона (включительно)
}

// Day один день обзора календаря
type Day struct {
	Date      time.Time         // Дата
	Open      bool              // Работает ли магазин в этот день
	OpenTime  *types.TimeString // Время открытия (nil, если закрыт)
	CloseTime *types.TimeString // Время закрытия (nil, если закрыт)
	Holiday   *string           // Название праздника в регионе (информационно)
}

// Response модель ответа с обзором календаря
type Response struct {
	ShopID int64     // ID магазина
	Region string    // Код региона магазина
	From   time.Time // Начало диапазона
	To     time.Time // Конец диапазона
	Days   []Day     // Дни диапазона по порядку

	OpenDays    int // Количество дней, когда магазин открыт
	WorkingDays int // Рабочие дни региона: без воскресений и праздников
}
