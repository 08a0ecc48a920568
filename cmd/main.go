package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/get_calendar"
	getCustomerAppointmentsHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/get_customer_appointments"
	getShopAppointmentsHandler "github.com/salonhub/SH-AppointmentService/internal/api/handlers/get_shop_appointments"
	"github.com/salonhub/SH-AppointmentService/internal/api/middleware"
	"github.com/salonhub/SH-AppointmentService/internal/config"
	"github.com/salonhub/SH-AppointmentService/internal/holidays"
	appointmentRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/appointment"
	scheduleRepo "github.com/salonhub/SH-AppointmentService/internal/infra/storage/schedule"
	directoryClient "github.com/salonhub/SH-AppointmentService/internal/integrations/directory"
	notifierClient "github.com/salonhub/SH-AppointmentService/internal/integrations/notifier"
	appointmentsService "github.com/salonhub/SH-AppointmentService/internal/service/appointments"
	cancelAppointmentUC "github.com/salonhub/SH-AppointmentService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/salonhub/SH-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/salonhub/SH-AppointmentService/internal/usecase/get_available_slots"
	getCalendarUC "github.com/salonhub/SH-AppointmentService/internal/usecase/get_calendar"
	"github.com/salonhub/SH-AppointmentService/pkg/dbmetrics"
	"github.com/salonhub/SH-AppointmentService/pkg/logger"
	"github.com/salonhub/SH-AppointmentService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SH-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.NotifierService.URL,
		time.Duration(cfg.NotifierService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s timeout=%ds, NotifierService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout,
		cfg.NotifierService.URL, cfg.NotifierService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
	}

	// Календарь праздников (регион магазина приходит из справочника)
	holidayCalendar := holidays.Calendar{}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		directory,
		holidayCalendar,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		directory,
		notifier,
		log,
	)

	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		appointmentRepository,
		notifier,
		cfg.Booking.CancellationNoticeHours,
		log,
	)

	getCalendarUseCase := getCalendarUC.NewUseCase(
		scheduleRepository,
		directory,
		holidayCalendar,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(
		cancelAppointmentUseCase,
		cfg.Booking.CancellationNoticeHours,
		cfg.Booking.SupportPhone,
		log,
	)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getShopAppointments := getShopAppointmentsHandler.NewHandler(appointmentSvc, log)

	// Лимитер на создание записей
	rateLimiter := middleware.NewRateLimiter(cfg.Booking.RateLimitRPS, cfg.Booking.RateLimitBurst)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на дату
	api.HandleFunc("/shops/{shopId}/staff/{staffId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь работы магазина
	api.HandleFunc("/shops/{shopId}/calendar",
		getCalendar.Handle).Methods(http.MethodGet)

	// Создание записи (с лимитом по IP)
	api.Handle("/appointments",
		rateLimiter.Middleware(http.HandlerFunc(createAppointment.Handle))).Methods(http.MethodPost)

	// Получение записи по ID
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Staff-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments",
		getCustomerAppointments.Handle).Methods(http.MethodGet)

	// Журнал записей магазина
	protected.HandleFunc("/shops/{shopId}/appointments",
		getShopAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
