package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	cancelBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/delete_booking"
	draftsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/drafts"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_business_hours"
	getCustomerBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_customer_bookings"
	listBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_bookings"
	quoteCartHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/quote_cart"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_business_hours"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/appointment"
	configRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/config"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
	draftStore "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/draft"
	invoiceRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/invoice"
	outboxRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/outbox"
	catalogServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/catalogservice"
	staffServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/SMC-SalonBookingService/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	cartService "github.com/m04kA/SMC-SalonBookingService/internal/service/cart"
	configService "github.com/m04kA/SMC-SalonBookingService/internal/service/config"
	draftsService "github.com/m04kA/SMC-SalonBookingService/internal/service/drafts"
	createBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	outboxWorker "github.com/m04kA/SMC-SalonBookingService/internal/worker/outbox"
	"github.com/m04kA/SMC-SalonBookingService/internal/worker/sweeper"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	defaults, err := defaultHours(cfg.Booking)
	if err != nil {
		log.Fatal("Invalid default business hours: %v", err)
	}

	// Счетчики работают всегда; наружу /metrics отдается только если метрики включены
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(prometheus.NewRegistry(), cfg.Metrics.ServiceName)
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

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxRetries(cfg.Booking.MaxCommitRetries))

	// Redis для черновиков
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		// Запись работает и без черновиков
		log.Warn("Redis is unavailable at %s, drafts will fail until it is back: %v", cfg.Redis.Addr, err)
	} else {
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}
	pingCancel()

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds, StaffService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout, cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	invoiceRepository := invoiceRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	outboxRepository := outboxRepo.NewRepository(wrappedDB)
	hoursRepository := configRepo.NewRepository(wrappedDB)
	drafts := draftStore.NewStore(rdb, cfg.Redis.KeyPrefix, cfg.Redis.DraftTTL())

	// Инициализируем сервисы
	configSvc := configService.NewService(hoursRepository, defaults, location, log)
	calculator := availabilityService.NewCalculator(configSvc, appointmentRepository, staffClient, location, log)
	aggregator := cartService.NewAggregator(catalogClient, log)
	draftsSvc := draftsService.NewService(drafts, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		invoiceRepository,
		customerRepository,
		outboxRepository,
		txMgr,
		domain.TransitionPolicy{RequireConfirmBeforeComplete: cfg.Booking.RequireConfirmBeforeComplete},
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		aggregator,
		calculator,
		customerRepository,
		appointmentRepository,
		invoiceRepository,
		outboxRepository,
		draftsSvc,
		txMgr,
		metricsCollector,
		cfg.Booking.DepositPercent,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(calculator, aggregator, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	quoteCart := quoteCartHandler.NewHandler(aggregator, cfg.Booking.DepositPercent, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(appointmentsSvc, log)
	listBookings := listBookingsHandler.NewHandler(appointmentsSvc, location, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(appointmentsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(appointmentsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(appointmentsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(appointmentsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(configSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(configSvc, log)
	draftsAPI := draftsHandler.NewHandler(draftsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(metricsCollector))

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

	// Свободное время и расчет корзины
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cart/quote", quoteCart.Handle).Methods(http.MethodPost)

	// Рабочие часы салона
	api.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)

	// Черновики бронирования
	api.HandleFunc("/drafts", draftsAPI.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/drafts/{sessionKey}", draftsAPI.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{sessionKey}", draftsAPI.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{sessionKey}", draftsAPI.HandleDelete).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{id:[0-9]+}/confirm", updateBookingStatus.HandleConfirm).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id:[0-9]+}/complete", updateBookingStatus.HandleComplete).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История клиента
	protected.HandleFunc("/customers/{phone}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	protected.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/business-hours/{weekday:[0-9]+}", updateBusinessHours.HandleDelete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	// Публикация событий из outbox
	if cfg.Kafka.Enabled {
		writer := outboxWorker.NewKafkaWriter(cfg.Kafka.Brokers, time.Duration(cfg.Kafka.WriteTimeoutSeconds)*time.Second)
		publisher := outboxWorker.NewPublisher(writer, outboxRepository, txMgr, metricsCollector, outboxWorker.Config{
			PollInterval: time.Duration(cfg.Kafka.PollIntervalSeconds) * time.Second,
			BatchSize:    cfg.Kafka.BatchSize,
		}, log)
		defer publisher.Close()

		g.Go(func() error { return publisher.Run(gctx) })
	} else {
		log.Warn("Kafka is disabled, outbox events stay unpublished")
	}

	// Отмена просроченных pending-записей
	if cfg.Sweeper.Enabled {
		sw, err := sweeper.New(appointmentsSvc, sweeper.Config{
			Schedule: cfg.Sweeper.Schedule,
			Grace:    time.Duration(cfg.Sweeper.PendingGraceMinutes) * time.Minute,
		}, location, log)
		if err != nil {
			log.Fatal("Failed to init sweeper: %v", err)
		}

		g.Go(func() error { return sw.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// defaultHours рабочие часы из config.toml, если в БД нет строк
func defaultHours(b config.BookingConfig) (domain.BusinessHours, error) {
	openTime, err := types.NewTimeStringFromString(b.DefaultOpenTime)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("default_open_time: %w", err)
	}
	closeTime, err := types.NewTimeStringFromString(b.DefaultCloseTime)
	if err != nil {
		return domain.BusinessHours{}, fmt.Errorf("default_close_time: %w", err)
	}

	return domain.BusinessHours{
		IsOpen:                  true,
		OpenTime:                openTime,
		CloseTime:               closeTime,
		SlotGranularityMinutes:  b.SlotGranularityMinutes,
		MinBookingNoticeMinutes: b.MinBookingNoticeMinutes,
		AdvanceBookingDays:      b.AdvanceBookingDays,
	}, nil
}
