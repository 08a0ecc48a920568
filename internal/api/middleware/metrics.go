package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonhub/SH-AppointmentService/pkg/metrics"
)

// statusRecorder запоминает код ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics собирает количество и длительность HTTP-запросов.
// В метку path попадает шаблон маршрута mux, а не конкретный URL,
// чтобы не раздувать кардинальность. Бизнес-счетчики записей
// инкрементируются здесь же по коду ответа.
func Metrics(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(r.Method, path, strconv.Itoa(recorder.status), time.Since(start))
			observeAppointmentEvents(m, r.Method, path, recorder.status)
		})
	}
}

// observeAppointmentEvents обновляет доменные счетчики по исходу запроса
func observeAppointmentEvents(m *metrics.Metrics, method, path string, status int) {
	switch {
	case method == http.MethodPost && path == "/api/v1/appointments":
		if status == http.StatusCreated {
			m.IncAppointmentCreated()
		}
		if status == http.StatusConflict {
			m.IncAppointmentConflict()
		}

	case method == http.MethodPatch && path == "/api/v1/appointments/{appointmentId}/cancel":
		if status == http.StatusOK {
			m.IncAppointmentCancelled()
		}
	}
}
