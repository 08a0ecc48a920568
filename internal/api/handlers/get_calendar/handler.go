package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonhub/SH-AppointmentService/internal/api/handlers"
	"github.com/salonhub/SH-AppointmentService/internal/domain"
	getCalendar "github.com/salonhub/SH-AppointmentService/internal/usecase/get_calendar"
)

const (
	msgInvalidShopID = "некорректный ID магазина"
	msgMissingRange  = "параметры from и to обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgShopNotFound  = "магазин не найден"
	msgRangeTooLarge = "слишком большой диапазон дат"
	msgInvalidRange  = "некорректный диапазон дат"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/shops/{shopId}/calendar
// Query params: from, to (required, YYYY-MM-DD, inclusive)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	shopID, err := strconv.ParseInt(vars["shopId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/calendar - Invalid shop ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	query := r.URL.Query()
	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /shops/{id}/calendar - Missing range: shop_id=%d", shopID)
		handlers.RespondBadRequest(w, msgMissingRange)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/calendar - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /shops/{id}/calendar - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{
		ShopID: shopID,
		From:   from,
		To:     to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrShopNotFound):
			h.logger.Warn("GET /shops/{id}/calendar - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)

		case errors.Is(err, getCalendar.ErrRangeTooLarge):
			h.logger.Warn("GET /shops/{id}/calendar - Range too large: shop_id=%d, from=%s, to=%s",
				shopID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /shops/{id}/calendar - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /shops/{id}/calendar - Failed to get calendar: shop_id=%d, error=%v",
				shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /shops/{id}/calendar - Calendar retrieved: shop_id=%d, days=%d",
		shopID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
