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
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/rs/cors"

	addScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/add_schedule"
	approveSalonHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/approve_salon"
	bookingTransitionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/booking_transition"
	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking_history"
	getSalonHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon"
	getSalonBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_salon_bookings"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/health"
	listSalonsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_salons"
	paymentWebhookHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/payment_webhook"
	registerSalonHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/register_salon"
	updateSalonHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_salon"
	updateScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_schedule"
	uploadSalonAgreementHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upload_salon_agreement"
	uploadSalonPhotosHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upload_salon_photos"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/tasks"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/uploads"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	salonsService "github.com/m04kA/SMC-SalonBooking/internal/service/salons"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/database"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

const (
	rateLimiterTTL     = 10 * time.Minute
	rateLimiterCleanup = time.Minute
)

// unpaidScheduler планировщик отмены неоплаченных бронирований (asynq или заглушка)
type unpaidScheduler interface {
	ScheduleCancelUnpaid(ctx context.Context, bookingID int64) error
	Close() error
}

// routes собранные HTTP обработчики
type routes struct {
	auth    *middleware.Authenticator
	limiter *middleware.RateLimiter

	getAvailableSlots *getAvailableSlotsHandler.Handler
	addSchedule       *addScheduleHandler.Handler
	getSchedule       *getScheduleHandler.Handler
	updateSchedule    *updateScheduleHandler.Handler

	createBooking     *createBookingHandler.Handler
	confirmBooking    *bookingTransitionHandler.Handler
	cancelBooking     *cancelBookingHandler.Handler
	cancelUnpaid      *bookingTransitionHandler.Handler
	completeBooking   *bookingTransitionHandler.Handler
	getBooking        *getBookingHandler.Handler
	getBookingHistory *getBookingHistoryHandler.Handler
	getUserBookings   *getUserBookingsHandler.Handler
	getSalonBookings  *getSalonBookingsHandler.Handler

	registerSalon        *registerSalonHandler.Handler
	listSalons           *listSalonsHandler.Handler
	getSalon             *getSalonHandler.Handler
	updateSalon          *updateSalonHandler.Handler
	uploadSalonPhotos    *uploadSalonPhotosHandler.Handler
	uploadSalonAgreement *uploadSalonAgreementHandler.Handler
	approveSalon         *approveSalonHandler.Handler
}

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

	log.Info("Starting SMC-SalonBooking...")
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

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без коллектора обёртка не пишет метрики, но переносит транзакции через контекст
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	recorder := metrics.NewBookingRecorder(metricsCollector, cfg.Metrics.ServiceName)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	salonRepository := salonRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Хранилище файлов салонов
	uploadSink, err := uploads.New(uploads.Options{
		Driver:       cfg.Uploads.Driver,
		MaxSize:      cfg.Uploads.MaxSize(),
		Dir:          cfg.Uploads.Dir,
		PublicPrefix: cfg.Uploads.PublicPrefix,
		CloudName:    cfg.Uploads.CloudName,
		APIKey:       cfg.Uploads.APIKey,
		APISecret:    cfg.Uploads.APISecret,
		Folder:       cfg.Uploads.CloudinaryFolder,
	})
	if err != nil {
		log.Fatal("Failed to initialize upload storage: %v", err)
	}
	log.Info("Upload storage initialized (driver=%s)", cfg.Uploads.Driver)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		recorder,
		cfg.Booking.UnpaidGrace(),
		log,
	)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	salonSvc := salonsService.NewService(salonRepository, uploadSink, log)

	// Очередь отложенных задач: отмена неоплаченных бронирований
	var (
		scheduler unpaidScheduler
		worker    *tasks.Worker
	)
	if cfg.Redis.Enabled {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		scheduler = tasks.NewScheduler(redisOpt, cfg.Booking.UnpaidGrace(), cfg.Redis.Queue, log)
		worker = tasks.NewWorker(redisOpt, cfg.Redis.Concurrency, cfg.Redis.Queue, bookingSvc, log, log.Sugar())
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start task worker: %v", err)
		}
		log.Info("Task queue enabled (redis=%s, queue=%s, concurrency=%d)",
			cfg.Redis.Addr, cfg.Redis.Queue, cfg.Redis.Concurrency)
	} else {
		scheduler = tasks.NewNoopScheduler(log)
		log.Warn("Task queue disabled: unpaid bookings will not expire automatically")
	}

	// Инициализируем use cases
	location := cfg.Schedule.Location()
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		scheduler,
		recorder,
		txMgr,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		log,
	)

	trustedProxies, err := cfg.Server.TrustedProxyPrefixes()
	if err != nil {
		log.Fatal("Invalid trusted proxies: %v", err)
	}

	// Инициализируем handlers
	h := routes{
		auth: middleware.NewAuthenticator(cfg.Auth.JWTSecret, log),
		limiter: middleware.NewRateLimiter(
			cfg.Booking.CreateRatePerSecond,
			cfg.Booking.CreateBurst,
			rateLimiterTTL,
			trustedProxies,
			log,
		),

		getAvailableSlots: getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log),
		addSchedule:       addScheduleHandler.NewHandler(scheduleSvc, log),
		getSchedule:       getScheduleHandler.NewHandler(scheduleSvc, log),
		updateSchedule:    updateScheduleHandler.NewHandler(scheduleSvc, log),

		createBooking:     createBookingHandler.NewHandler(createBookingUseCase, location, log),
		cancelBooking:     cancelBookingHandler.NewHandler(bookingSvc, log),
		getBooking:        getBookingHandler.NewHandler(bookingSvc, log),
		getBookingHistory: getBookingHistoryHandler.NewHandler(bookingSvc, log),
		getUserBookings:   getUserBookingsHandler.NewHandler(bookingSvc, log),
		getSalonBookings:  getSalonBookingsHandler.NewHandler(bookingSvc, log),

		registerSalon:        registerSalonHandler.NewHandler(salonSvc, log),
		listSalons:           listSalonsHandler.NewHandler(salonSvc, log),
		getSalon:             getSalonHandler.NewHandler(salonSvc, log),
		updateSalon:          updateSalonHandler.NewHandler(salonSvc, log),
		uploadSalonPhotos:    uploadSalonPhotosHandler.NewHandler(salonSvc, cfg.Uploads.MaxSize(), log),
		uploadSalonAgreement: uploadSalonAgreementHandler.NewHandler(salonSvc, cfg.Uploads.MaxSize(), log),
		approveSalon:         approveSalonHandler.NewHandler(salonSvc, log),
	}
	if h.confirmBooking, err = bookingTransitionHandler.NewHandler(bookingSvc, domain.TransitionConfirm, log); err != nil {
		log.Fatal("Failed to create handler: %v", err)
	}
	if h.cancelUnpaid, err = bookingTransitionHandler.NewHandler(bookingSvc, domain.TransitionCancelUnpaid, log); err != nil {
		log.Fatal("Failed to create handler: %v", err)
	}
	if h.completeBooking, err = bookingTransitionHandler.NewHandler(bookingSvc, domain.TransitionComplete, log); err != nil {
		log.Fatal("Failed to create handler: %v", err)
	}

	// Фоновая очистка лимитера
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go h.limiter.Run(bgCtx, rateLimiterCleanup)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthHandler.NewHandler(wrappedDB, log).Handle).Methods(http.MethodGet)

	// Вебхук платежей проверяется подписью, а не JWT
	if cfg.Payments.Enabled {
		webhook := paymentWebhookHandler.NewHandler(payments.NewStripeVerifier(cfg.Payments.StripeWebhookSecret), bookingSvc, log)
		r.HandleFunc("/payment/webhook", webhook.Handle).Methods(http.MethodPost)
		r.HandleFunc("/api/v1/payment/webhook", webhook.Handle).Methods(http.MethodPost)
		log.Info("Payment webhook enabled")
	}

	// Локально сохранённые файлы отдаём сами, без листинга каталогов
	if local, ok := uploadSink.(*uploads.LocalSink); ok {
		r.PathPrefix(local.PublicPrefix() + "/").Handler(local.Handler()).Methods(http.MethodGet)
	}

	// Одни и те же маршруты доступны в корне и под /api/v1
	h.register(r.PathPrefix("/api/v1").Subrouter())
	h.register(r)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	stopBackground()

	// Дожидаемся текущих задач очереди
	if worker != nil {
		worker.Shutdown()
		log.Info("Task worker stopped")
	}
	if err := scheduler.Close(); err != nil {
		log.Error("Failed to close task scheduler: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// register вешает маршруты API на роутер
func (h routes) register(r *mux.Router) {
	staff := []domain.Role{domain.RoleShopOwner, domain.RoleAdmin}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/schedule/available-slots", h.getAvailableSlots.Handle).Methods(http.MethodGet)
	r.HandleFunc("/schedule/{salonId:[0-9]+}", h.getSchedule.Handle).Methods(http.MethodGet)
	r.HandleFunc("/salon/register", h.registerSalon.Handle).Methods(http.MethodPost)
	r.HandleFunc("/salon/{salonId:[0-9]+}", h.getSalon.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	// --- Расписание ---
	r.Handle("/schedule", h.protect(h.addSchedule.Handle, staff...)).Methods(http.MethodPost)
	r.Handle("/schedule/{salonId:[0-9]+}", h.protectSalon(h.updateSchedule.Handle)).Methods(http.MethodPut)

	// --- Бронирования ---
	// Создание ограничено по частоте запросов с одного IP
	r.Handle("/booking/create", h.limiter.Middleware(h.protect(h.createBooking.Handle))).Methods(http.MethodPost)
	r.Handle("/booking/confirm/{bookingId:[0-9]+}", h.protect(h.confirmBooking.Handle, staff...)).Methods(http.MethodPost)
	r.Handle("/booking/cancel/{bookingId:[0-9]+}", h.protect(h.cancelBooking.Handle)).Methods(http.MethodPost)
	r.Handle("/booking/cancel-unpaid/{bookingId:[0-9]+}", h.protect(h.cancelUnpaid.Handle, staff...)).Methods(http.MethodPost)
	r.Handle("/booking/complete/{bookingId:[0-9]+}", h.protect(h.completeBooking.Handle, staff...)).Methods(http.MethodPost)
	r.Handle("/booking/user/{userId:[0-9]+}", h.protect(h.getUserBookings.Handle)).Methods(http.MethodGet)
	r.Handle("/booking/salon/{salonId:[0-9]+}", h.protectSalon(h.getSalonBookings.Handle)).Methods(http.MethodGet)
	r.Handle("/booking/{bookingId:[0-9]+}", h.protect(h.getBooking.Handle)).Methods(http.MethodGet)
	r.Handle("/booking/{bookingId:[0-9]+}/history", h.protect(h.getBookingHistory.Handle)).Methods(http.MethodGet)

	// --- Салоны ---
	r.Handle("/salon", h.protect(h.listSalons.Handle, domain.RoleAdmin)).Methods(http.MethodGet)
	r.Handle("/salon/{salonId:[0-9]+}", h.protectSalon(h.updateSalon.Handle)).Methods(http.MethodPut)
	r.Handle("/salon/{salonId:[0-9]+}/photos", h.protectSalon(h.uploadSalonPhotos.Handle)).Methods(http.MethodPost)
	r.Handle("/salon/{salonId:[0-9]+}/agreement", h.protectSalon(h.uploadSalonAgreement.Handle)).Methods(http.MethodPost)
	r.Handle("/salon/{salonId:[0-9]+}/approve", h.protect(h.approveSalon.Handle, domain.RoleAdmin)).Methods(http.MethodPost)
}

// protect требует валидный токен и, если заданы роли, одну из них
func (h routes) protect(fn http.HandlerFunc, roles ...domain.Role) http.Handler {
	var next http.Handler = fn
	if len(roles) > 0 {
		next = middleware.RequireRole(roles...)(next)
	}
	return h.auth.Protect(next)
}

// protectSalon пропускает администратора и владельца салона {salonId}
func (h routes) protectSalon(fn http.HandlerFunc) http.Handler {
	return h.protect(middleware.RequireSalonAccess("salonId")(fn).ServeHTTP, domain.RoleShopOwner, domain.RoleAdmin)
}
