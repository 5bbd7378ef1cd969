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
	"github.com/redis/go-redis/v9"

	createReservationHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/create_reservation"
	createScheduleHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/create_schedule"
	deleteReservationHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/delete_reservation"
	deleteScheduleHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/delete_schedule"
	getAccountsHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/get_accounts"
	getMyReservationsHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/get_my_reservations"
	getSchedulesHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/get_schedules"
	getStatisticsHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/get_statistics"
	getTimeslotsHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/get_timeslots"
	reportIssueHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/report_issue"
	updateScheduleHandler "github.com/tkardach/SwimClubServer/internal/api/handlers/update_schedule"
	"github.com/tkardach/SwimClubServer/internal/api/middleware"
	"github.com/tkardach/SwimClubServer/internal/config"
	"github.com/tkardach/SwimClubServer/internal/infra/lock"
	scheduleRepo "github.com/tkardach/SwimClubServer/internal/infra/storage/schedule"
	"github.com/tkardach/SwimClubServer/internal/integrations/broker"
	calendarClient "github.com/tkardach/SwimClubServer/internal/integrations/calendar"
	"github.com/tkardach/SwimClubServer/internal/integrations/googleauth"
	"github.com/tkardach/SwimClubServer/internal/integrations/mailer"
	"github.com/tkardach/SwimClubServer/internal/integrations/publicip"
	rosterClient "github.com/tkardach/SwimClubServer/internal/integrations/roster"
	accountsService "github.com/tkardach/SwimClubServer/internal/service/accounts"
	issuesService "github.com/tkardach/SwimClubServer/internal/service/issues"
	reservationsService "github.com/tkardach/SwimClubServer/internal/service/reservations"
	schedulesService "github.com/tkardach/SwimClubServer/internal/service/schedules"
	createReservationUC "github.com/tkardach/SwimClubServer/internal/usecase/create_reservation"
	getStatisticsUC "github.com/tkardach/SwimClubServer/internal/usecase/get_statistics"
	getTimeslotsUC "github.com/tkardach/SwimClubServer/internal/usecase/get_timeslots"
	"github.com/tkardach/SwimClubServer/internal/worker/notifier"
	"github.com/tkardach/SwimClubServer/internal/worker/watchdog"
	"github.com/tkardach/SwimClubServer/pkg/dbmetrics"
	"github.com/tkardach/SwimClubServer/pkg/logger"
	"github.com/tkardach/SwimClubServer/pkg/metrics"
	"github.com/tkardach/SwimClubServer/pkg/simpletxmanager"
	"github.com/tkardach/SwimClubServer/pkg/txmanager"
)

const notifyWorkers = 2

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

	log.Info("Starting SwimClubServer (environment=%s)...", cfg.Environment)
	log.Info("Configuration loaded from config.toml")

	policy, err := cfg.BookingPolicy()
	if err != nil {
		log.Fatal("Failed to build booking policy: %v", err)
	}

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

	// Репозиторий расписаний и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var (
		scheduleRepository *scheduleRepo.Repository
		txMgr              TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Google Calendar и Google Sheets через один сервисный аккаунт
	googleHTTP, err := googleauth.NewHTTPClient(context.Background(), cfg.Google.CredentialsFile,
		calendarClient.Scope, rosterClient.Scope)
	if err != nil {
		log.Fatal("Failed to load google credentials: %v", err)
	}
	googleHTTP.Timeout = time.Duration(cfg.Google.Timeout) * time.Second

	events, err := calendarClient.NewGoogleEvents(context.Background(), googleHTTP, cfg.Google.CalendarID)
	if err != nil {
		log.Fatal("Failed to initialize calendar API: %v", err)
	}
	sheets, err := rosterClient.NewGoogleSheets(context.Background(), googleHTTP, cfg.Google.SpreadsheetID)
	if err != nil {
		log.Fatal("Failed to initialize sheets API: %v", err)
	}

	calendar := calendarClient.NewClient(events, policy.Location, metricsCollector, log)
	roster := rosterClient.NewClient(sheets, metricsCollector, log)
	log.Info("Google clients initialized (calendar=%s, timezone=%s, timeout=%ds)",
		cfg.Google.CalendarID, cfg.Google.TimeZone, cfg.Google.Timeout)

	// Блокировка таймслота: redis для нескольких экземпляров, иначе в памяти процесса
	var locker createReservationUC.SlotLocker
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		locker = lock.NewRedisLocker(redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.LockWait)*time.Second,
			log,
		)
		log.Info("Redis slot locks enabled (addr=%s)", cfg.Redis.Addr)
	} else {
		locker = lock.NewLocalLocker()
		log.Info("Using in-process slot locks")
	}

	// Брокер событий бронирования
	var publisher createReservationUC.Publisher = broker.NopPublisher{}
	var eventBroker *broker.Broker
	if cfg.Broker.Enabled {
		eventBroker, err = broker.NewBroker(cfg.Broker.URL, cfg.Broker.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to broker: %v", err)
		}
		publisher = eventBroker
		log.Info("Broker connected (exchange=%s)", cfg.Broker.Exchange)
	}

	// Почта
	type MailSender interface {
		Send(ctx context.Context, msg mailer.Message) error
	}
	var mail MailSender
	mailTimeout := time.Duration(cfg.Mailer.Timeout) * time.Second
	if cfg.Mailer.Enabled {
		mail = mailer.NewClient(cfg.Mailer.APIKey, cfg.Mailer.FromEmail, cfg.Mailer.FromName,
			mailTimeout, metricsCollector, log)
		log.Info("Mailer enabled (from=%s)", cfg.Mailer.FromEmail)
	} else {
		mail = mailer.NewDisabled(log)
		log.Warn("Mailer disabled, emails will not be sent")
	}

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(scheduleRepository, txMgr, log)
	reservationSvc := reservationsService.NewService(calendar, roster, publisher, policy, log)
	accountSvc := accountsService.NewService(roster, log)
	issueSvc := issuesService.NewService(mail, cfg.Mailer.IssuesEmail, log)

	// Инициализируем use cases
	allowOverride := !cfg.IsProduction()
	createReservationUseCase := createReservationUC.NewUseCase(
		scheduleRepository,
		calendar,
		roster,
		locker,
		publisher,
		metricsCollector,
		policy,
		allowOverride,
		log,
	)
	getTimeslotsUseCase := getTimeslotsUC.NewUseCase(scheduleRepository, calendar, policy, log)
	getStatisticsUseCase := getStatisticsUC.NewUseCase(calendar, roster, policy, log)

	// Инициализируем handlers
	getTimeslots := getTimeslotsHandler.NewHandler(getTimeslotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getSchedules := getSchedulesHandler.NewHandler(scheduleSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)
	getAccounts := getAccountsHandler.NewHandler(accountSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(getStatisticsUseCase, log)
	reportIssue := reportIssueHandler.NewHandler(issueSvc, log)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	registerRoutes(r.PathPrefix("/api/v1").Subrouter(), auth, apiHandlers{
		getTimeslots:      getTimeslots.Handle,
		listSchedules:     getSchedules.HandleList,
		currentSchedule:   getSchedules.HandleCurrent,
		scheduleForDate:   getSchedules.HandleForDate,
		schedulePeriod:    getSchedules.HandlePeriod,
		createReservation: createReservation.Handle,
		reportIssue:       reportIssue.Handle,
		getMyReservations: getMyReservations.Handle,
		deleteReservation: deleteReservation.Handle,
		createSchedule:    createSchedule.Handle,
		updateSchedule:    updateSchedule.Handle,
		deleteSchedule:    deleteSchedule.Handle,
		getAccounts:       getAccounts.Handle,
		getWeekStatistics: getStatistics.Handle,
	})

	// Фоновые задачи
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	var notify *notifier.Notifier
	if eventBroker != nil {
		notify = notifier.New(eventBroker, mail, cfg.Broker.NotifyQueue, notifyWorkers, mailTimeout, log)
		if err := notify.Start(workerCtx); err != nil {
			log.Fatal("Failed to start notifier: %v", err)
		}
		log.Info("Notifier consuming queue %s", cfg.Broker.NotifyQueue)
	}

	var ipWatchdog *watchdog.Watchdog
	if cfg.Watchdog.Enabled {
		lookupTimeout := time.Duration(cfg.Watchdog.Timeout) * time.Second
		ipWatchdog = watchdog.New(
			publicip.NewClient(cfg.Watchdog.IPServiceURL, lookupTimeout),
			mail,
			cfg.Mailer.IPEmail,
			cfg.Watchdog.Schedule,
			lookupTimeout+mailTimeout,
			log,
		)
		if err := ipWatchdog.Start(workerCtx); err != nil {
			log.Fatal("Failed to start watchdog: %v", err)
		}
	}

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи
	stopWorkers()
	if ipWatchdog != nil {
		ipWatchdog.Stop()
	}
	if notify != nil {
		notify.Wait()
	}
	if eventBroker != nil {
		if err := eventBroker.Close(); err != nil {
			log.Error("Failed to close broker: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
