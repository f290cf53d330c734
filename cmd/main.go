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

	createAppointmentHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/create_appointment"
	getBestDiscountHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/get_best_discount"
	getBulkAvailabilityHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/get_bulk_availability"
	getStaffAvailabilityHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/get_staff_availability"
	manageAppointmentsHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/manage_appointments"
	manageDiscountsHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/manage_discounts"
	manageScheduleHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/manage_schedule"
	quotePriceHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/quote_price"
	releaseSlotHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/release_slot"
	reserveSlotHandler "github.com/kmlvnk/SLN-BookingService/internal/api/handlers/reserve_slot"
	"github.com/kmlvnk/SLN-BookingService/internal/api/middleware"
	"github.com/kmlvnk/SLN-BookingService/internal/config"
	appointmentRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/appointment"
	discountRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/discount"
	reservationRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/kmlvnk/SLN-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/kmlvnk/SLN-BookingService/internal/integrations/catalogservice"
	appointmentsService "github.com/kmlvnk/SLN-BookingService/internal/service/appointments"
	availabilityService "github.com/kmlvnk/SLN-BookingService/internal/service/availability"
	discountsService "github.com/kmlvnk/SLN-BookingService/internal/service/discounts"
	reservationsService "github.com/kmlvnk/SLN-BookingService/internal/service/reservations"
	scheduleService "github.com/kmlvnk/SLN-BookingService/internal/service/schedule"
	createAppointmentUC "github.com/kmlvnk/SLN-BookingService/internal/usecase/create_appointment"
	getBulkAvailabilityUC "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_bulk_availability"
	getStaffAvailabilityUC "github.com/kmlvnk/SLN-BookingService/internal/usecase/get_staff_availability"
	reserveSlotUC "github.com/kmlvnk/SLN-BookingService/internal/usecase/reserve_slot"
	"github.com/kmlvnk/SLN-BookingService/pkg/dbmetrics"
	"github.com/kmlvnk/SLN-BookingService/pkg/logger"
	"github.com/kmlvnk/SLN-BookingService/pkg/metrics"
	"github.com/kmlvnk/SLN-BookingService/pkg/simpletxmanager"
	"github.com/kmlvnk/SLN-BookingService/pkg/txmanager"
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

	log.Info("Starting SLN-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента каталога
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("CatalogService client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		scheduleRepository    *scheduleRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		reservationRepository *reservationRepo.Repository
		discountRepository    *discountRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		discountRepository = discountRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		discountRepository = discountRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(scheduleRepository, log)
	discountsSvc := discountsService.NewService(discountRepository, catalogClient, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		&reservationsService.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, log)

	// Инициализируем use cases
	holdTTL := time.Duration(cfg.Reservations.HoldTTLMinutes) * time.Minute

	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		reservationRepository,
		appointmentRepository,
		availabilitySvc,
		txMgr,
		holdTTL,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		reservationRepository,
		discountRepository,
		catalogClient,
		availabilitySvc,
		txMgr,
		log,
	)

	getStaffAvailabilityUseCase := getStaffAvailabilityUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		reservationRepository,
		log,
	)

	getBulkAvailabilityUseCase := getBulkAvailabilityUC.NewUseCase(
		availabilitySvc,
		appointmentRepository,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	getStaffAvailability := getStaffAvailabilityHandler.NewHandler(getStaffAvailabilityUseCase, log)
	getBulkAvailability := getBulkAvailabilityHandler.NewHandler(getBulkAvailabilityUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(reservationsSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	quotePrice := quotePriceHandler.NewHandler(discountsSvc, log)
	getBestDiscount := getBestDiscountHandler.NewHandler(discountsSvc, log)
	manageAppointments := manageAppointmentsHandler.NewHandler(appointmentsSvc, log)
	manageDiscounts := manageDiscountsHandler.NewHandler(discountsSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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
	// PUBLIC ROUTES (требуют X-Session-ID header)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.Session)

	// Доступность одного сотрудника на дату
	public.HandleFunc("/salons/{salonId}/staff/{staffId}/availability",
		getStaffAvailability.Handle).Methods(http.MethodGet)

	// Доступность нескольких сотрудников на дату
	public.HandleFunc("/salons/{salonId}/availability",
		getBulkAvailability.Handle).Methods(http.MethodPost)

	// Расчет цены услуги на слот с учетом скидок
	public.HandleFunc("/salons/{salonId}/price-quote",
		quotePrice.Handle).Methods(http.MethodGet)

	// Максимальная скидка на услугу для витрины
	public.HandleFunc("/salons/{salonId}/services/{serviceId}/best-discount",
		getBestDiscount.Handle).Methods(http.MethodGet)

	// Временный резерв слота
	public.HandleFunc("/reservations", reserveSlot.Handle).Methods(http.MethodPost)

	// Снятие резервов сессии
	public.HandleFunc("/reservations", releaseSlot.Handle).Methods(http.MethodDelete)

	// Создание записи
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)

	// --- Записи ---
	admin.HandleFunc("/appointments/search", manageAppointments.ListByStaff).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", manageAppointments.Get).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/cancel", manageAppointments.Cancel).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/status", manageAppointments.UpdateStatus).Methods(http.MethodPut)

	// --- Скидки ---
	admin.HandleFunc("/salons/{salonId}/discounts", manageDiscounts.Create).Methods(http.MethodPost)
	admin.HandleFunc("/salons/{salonId}/discounts", manageDiscounts.List).Methods(http.MethodGet)
	admin.HandleFunc("/discounts/{id}", manageDiscounts.Deactivate).Methods(http.MethodDelete)

	// --- Расписания ---
	admin.HandleFunc("/salons/{salonId}/shop-hours", manageSchedule.SetShopHours).Methods(http.MethodPut)
	admin.HandleFunc("/salons/{salonId}/shop-hours", manageSchedule.GetShopHours).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId}/working-hours", manageSchedule.UpsertWorkingHours).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}/overrides", manageSchedule.UpsertOverride).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}/overrides", manageSchedule.ListOverrides).Methods(http.MethodGet)
	admin.HandleFunc("/overrides/{id}", manageSchedule.DeleteOverride).Methods(http.MethodDelete)

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
