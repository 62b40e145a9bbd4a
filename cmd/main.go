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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/health"
	replaceAvailabilityHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/replace_availability"
	setAcceptingHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/set_accepting_bookings"
	updateStatusHandler "github.com/m04kA/SMC-TherapyBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-TherapyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBooking/internal/config"
	"github.com/m04kA/SMC-TherapyBooking/internal/infra/lock"
	availabilityRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/directory"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	availabilityService "github.com/m04kA/SMC-TherapyBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TherapyBooking/internal/service/bookings"
	providersService "github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
	createBookingUC "github.com/m04kA/SMC-TherapyBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TherapyBooking/internal/usecase/get_available_slots"
	updateStatusUC "github.com/m04kA/SMC-TherapyBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-TherapyBooking/migrations"
	"github.com/m04kA/SMC-TherapyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
	"github.com/m04kA/SMC-TherapyBooking/pkg/metrics"
	"github.com/m04kA/SMC-TherapyBooking/pkg/migrator"
	"github.com/m04kA/SMC-TherapyBooking/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-TherapyBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil, если выключены: все методы nil-safe)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrator.Up(db, migrations.FS, ".", log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Redis (опционально): распределенная блокировка, pub/sub уведомлений, лимитер
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Блокировка провайдера
	var providerLocker lock.Locker
	switch cfg.Lock.Backend {
	case "redis":
		providerLocker = lock.NewRedis(rdb, cfg.Lock.TTL(), cfg.Lock.Retry(), cfg.Lock.Wait(), log)
	default:
		providerLocker = lock.NewLocal(cfg.Lock.Wait())
	}
	log.Info("Provider lock backend: %s (wait=%s)", cfg.Lock.Backend, cfg.Lock.Wait())

	// Репозитории и транзакции
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Интеграции
	directoryClient := directory.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	publishers := []notifier.Publisher{notifier.NewLogPublisher(log)}
	if cfg.Notifier.Enabled && rdb != nil {
		publishers = append(publishers, notifier.NewRedisPublisher(rdb, cfg.Notifier.Channel))
		log.Info("Notifications published to redis channel %s", cfg.Notifier.Channel)
	}
	dispatcher := notifier.NewDispatcher(
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		metricsCollector,
		log,
		publishers...,
	)

	// Сервисы
	providerSvc := providersService.NewService(directoryClient, availabilityRepository, log)
	availabilitySvc := availabilityService.NewService(providerSvc, availabilityRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	detector := scheduling.NewDetector(bookingRepository)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(providerSvc, detector, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		providerSvc,
		detector,
		providerLocker,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		providerSvc,
		detector,
		providerLocker,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	replaceAvailability := replaceAvailabilityHandler.NewHandler(availabilitySvc, log)
	setAccepting := setAcceptingHandler.NewHandler(availabilitySvc, log)

	optionalDeps := map[string]health.Pinger{}
	if rdb != nil {
		optionalDeps["redis"] = health.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	healthHandler := health.NewHandler(map[string]health.Pinger{"postgres": wrappedDB}, optionalDeps)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health/live", healthHandler.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", healthHandler.Readiness).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	var createBookingHTTP http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		rateLimit, err := middleware.RateLimit(cfg.RateLimit.Rate, rdb)
		if err != nil {
			log.Fatal("Failed to create rate limiter: %v", err)
		}
		createBookingHTTP = rateLimit(createBookingHTTP)
		log.Info("Rate limit %s enabled for POST /bookings", cfg.RateLimit.Rate)
	}
	protected.Handle("/bookings", createBookingHTTP).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Расписание провайдера ---
	protected.HandleFunc("/providers/{providerId}/availability", replaceAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/availability/accepting", setAccepting.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, отправленных до остановки
	dispatcher.Wait()

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
