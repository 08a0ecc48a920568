package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	appointmentsCreated   prometheus.Counter
	appointmentConflicts  prometheus.Counter
	appointmentsCancelled prometheus.Counter

	dbQueryDuration *prometheus.HistogramVec
	dbPoolGauge     *prometheus.GaugeVec
}

// New регистрирует метрики в дефолтном реестре prometheus
func New(service string) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		appointmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Total number of successfully created appointments",
			ConstLabels: constLabels,
		}),

		appointmentConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointment_conflicts_total",
			Help:        "Total number of booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}),

		appointmentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Total number of cancelled appointments",
			ConstLabels: constLabels,
		}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		dbPoolGauge: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbPoolGauge.WithLabelValues("open").Set(float64(open))
	m.dbPoolGauge.WithLabelValues("idle").Set(float64(idle))
	m.dbPoolGauge.WithLabelValues("in_use").Set(float64(inUse))
}

// IncAppointmentCreated увеличивает счетчик созданных записей
func (m *Metrics) IncAppointmentCreated() {
	m.appointmentsCreated.Inc()
}

// IncAppointmentConflict увеличивает счетчик конфликтов бронирования
func (m *Metrics) IncAppointmentConflict() {
	m.appointmentConflicts.Inc()
}

// IncAppointmentCancelled увеличивает счетчик отмен
func (m *Metrics) IncAppointmentCancelled() {
	m.appointmentsCancelled.Inc()
}
