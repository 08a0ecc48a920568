package get_calendar

import (
	"github.com/salonhub/SH-AppointmentService/internal/domain"
	getCalendar "github.com/salonhub/SH-AppointmentService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ShopID      int64         `json:"shopId"`
	Region      string        `json:"region"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Days        []CalendarDay `json:"days"`
	OpenDays    int           `json:"openDays"`
	WorkingDays int           `json:"workingDays"`
}

// CalendarDay один день обзора
type CalendarDay struct {
	Date      string  `json:"date"`
	Open      bool    `json:"open"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
	Holiday   *string `json:"holiday,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		calendarDay := CalendarDay{
			Date:    day.Date.Format(domain.DateFormat),
			Open:    day.Open,
			Holiday: day.Holiday,
		}
		if day.OpenTime != nil {
			openTime := day.OpenTime.String()
			calendarDay.OpenTime = &openTime
		}
		if day.CloseTime != nil {
			closeTime := day.CloseTime.String()
			calendarDay.CloseTime = &closeTime
		}
		days[i] = calendarDay
	}

	return &CalendarResponse{
		ShopID:      resp.ShopID,
		Region:      resp.Region,
		From:        resp.From.Format(domain.DateFormat),
		To:          resp.To.Format(domain.DateFormat),
		Days:        days,
		OpenDays:    resp.OpenDays,
		WorkingDays: resp.WorkingDays,
	}
}
