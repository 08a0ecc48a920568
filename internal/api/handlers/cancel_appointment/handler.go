package cancel_appointment

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhub/SH-AppointmentService/internal/api/handlers"
	cancelAppointment "github.com/salonhub/SH-AppointmentService/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgAlreadyCancelled     = "запись уже отменена"
	msgInvalidInput         = "некорректные данные отмены"
)

type Handler struct {
	useCase      CancelAppointmentUseCase
	noticeHours  int
	supportPhone string
	logger       Logger
}

// NewHandler создает новый экземпляр обработчика.
// noticeHours и supportPhone попадают в текст отказа при закрытом окне отмены.
func NewHandler(useCase CancelAppointmentUseCase, noticeHours int, supportPhone string, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		noticeHours:  noticeHours,
		supportPhone: supportPhone,
		logger:       logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Already cancelled: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		case errors.Is(err, cancelAppointment.ErrCancellationWindowClosed):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Window closed: appointment_id=%d", appointmentID)
			handlers.RespondUnprocessable(w, h.windowClosedMessage())

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, actor=%s",
		appointmentID, req.Actor)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// windowClosedMessage текст отказа для клиента с телефоном магазина
func (h *Handler) windowClosedMessage() string {
	return fmt.Sprintf("онлайн-отмена возможна не позднее чем за %d ч. до начала записи, свяжитесь с нами по телефону %s",
		h.noticeHours, h.supportPhone)
}
