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

	assignTechnicianHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/assign_technician"
	cancelBookingHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/get_booking"
	getBookingHistoryHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/get_booking_history"
	getCustomerBookingsHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/get_customer_bookings"
	getTechnicianJobsHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/get_technician_jobs"
	rescheduleBookingHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/reschedule_booking"
	updateStatusHandler "github.com/seatslabs/VSC-BookingService/internal/api/handlers/update_status"
	"github.com/seatslabs/VSC-BookingService/internal/api/middleware"
	"github.com/seatslabs/VSC-BookingService/internal/config"
	bookingRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/catalog"
	historyRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/history"
	timeslotRepo "github.com/seatslabs/VSC-BookingService/internal/infra/storage/timeslot"
	notifyServiceClient "github.com/seatslabs/VSC-BookingService/internal/integrations/notifyservice"
	"github.com/seatslabs/VSC-BookingService/internal/jobs"
	bookingsService "github.com/seatslabs/VSC-BookingService/internal/service/bookings"
	slotsService "github.com/seatslabs/VSC-BookingService/internal/service/slots"
	assignTechnicianUC "github.com/seatslabs/VSC-BookingService/internal/usecase/assign_technician"
	cancelBookingUC "github.com/seatslabs/VSC-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/seatslabs/VSC-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/seatslabs/VSC-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/seatslabs/VSC-BookingService/internal/usecase/reschedule_booking"
	updateStatusUC "github.com/seatslabs/VSC-BookingService/internal/usecase/update_status"
	"github.com/seatslabs/VSC-BookingService/pkg/bookingref"
	"github.com/seatslabs/VSC-BookingService/pkg/dbmetrics"
	"github.com/seatslabs/VSC-BookingService/pkg/logger"
	"github.com/seatslabs/VSC-BookingService/pkg/metrics"
	"github.com/seatslabs/VSC-BookingService/pkg/simpletxmanager"
	"github.com/seatslabs/VSC-BookingService/pkg/txmanager"
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

	log.Info("Starting VSC-BookingService...")
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

	// Инициализируем клиент notification-сервиса
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		timeslotRepository *timeslotRepo.Repository
		historyRepository  *historyRepo.Repository
		catalogRepository  *catalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		timeslotRepository = timeslotRepo.NewRepository(wrappedDB)
		historyRepository = historyRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		timeslotRepository = timeslotRepo.NewRepository(db)
		historyRepository = historyRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, historyRepository, log)
	slotGenerator := slotsService.NewGenerator(timeslotRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		timeslotRepository,
		catalogRepository,
		bookingRepository,
		historyRepository,
		txMgr,
		bookingref.Generator{},
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		timeslotRepository,
		historyRepository,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		timeslotRepository,
		historyRepository,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		timeslotRepository,
		txMgr,
		log,
	)
	assignTechnicianUseCase := assignTechnicianUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		timeslotRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	assignTechnician := assignTechnicianHandler.NewHandler(assignTechnicianUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingHistory := getBookingHistoryHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getTechnicianJobs := getTechnicianJobsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение бронирования по номеру
	api.HandleFunc("/bookings/reference/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История статусов бронирования
	protected.HandleFunc("/bookings/{bookingId}/history", getBookingHistory.Handle).Methods(http.MethodGet)

	// Смена статуса бронирования (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования клиентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Перенос бронирования на другой слот
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// Назначение техника на бронирование
	protected.HandleFunc("/bookings/{bookingId}/technician", assignTechnician.Handle).Methods(http.MethodPost)

	// --- Списки ---
	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// Задания техника
	protected.HandleFunc("/technicians/{technicianId}/jobs", getTechnicianJobs.Handle).Methods(http.MethodGet)

	// Запускаем фоновые джобы
	jobsCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	slotGenJob := jobs.NewSlotGenJob(
		slotGenerator,
		cfg.Jobs.SlotWindowDays,
		time.Duration(cfg.Jobs.SlotGenIntervalHours)*time.Hour,
		log,
	)
	go slotGenJob.Run(jobsCtx)

	reminderJob := jobs.NewReminderJob(
		bookingRepository,
		notifyClient,
		time.Duration(cfg.Jobs.ReminderIntervalMinutes)*time.Minute,
		log,
	)
	go reminderJob.Run(jobsCtx)

	log.Info("Background jobs started (slot window=%d days, reminder interval=%d min)",
		cfg.Jobs.SlotWindowDays, cfg.Jobs.ReminderIntervalMinutes)

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

	// Останавливаем фоновые джобы
	cancelJobs()

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
