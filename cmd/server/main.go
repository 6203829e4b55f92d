package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trainops-service/internal/infrastructure/config"
	"trainops-service/internal/infrastructure/oauth"
	"trainops-service/internal/infrastructure/persistence"
	"trainops-service/internal/interface/api"
	"trainops-service/internal/interface/gmail"
	appRepo "trainops-service/internal/interface/repository"
	"trainops-service/internal/scheduling"
	"trainops-service/internal/usecase"
	"trainops-service/pkg/logger"
	"trainops-service/pkg/metrics"
	"trainops-service/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	log.Info("Starting Trainops Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	appMetrics := metrics.NewMetrics("trainops")

	// Set up repositories
	missionRepo := appRepo.NewGormMissionRepository(gormDB)
	availabilityRepo := appRepo.NewGormAvailabilityRepository(gormDB)
	aircraftRepo := appRepo.NewGormAircraftRepository(gormDB)
	syllabusRepo := appRepo.NewGormSyllabusRepository(gormDB)
	enrollmentRepo := appRepo.NewGormEnrollmentRepository(gormDB)
	profileRepo := appRepo.NewGormProfileRepository(gormDB)
	invoiceRepo := appRepo.NewGormInvoiceRepository(gormDB)
	documentRepo := appRepo.NewMongoDocumentRepository(mongoDB)
	debriefRepo := appRepo.NewMongoDebriefRepository(mongoDB)
	calendarRepo := appRepo.NewWebhookCalendarRepository(cfg.CalendarWebhookURL, cfg.CalendarWebhookToken, log)

	// Set up Gmail OAuth and the mailer
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	mailer, err := gmail.NewGmailMailer(ctx, gmailOAuth, cfg.GmailSender, log, appMetrics)
	if err != nil {
		log.Fatal("Failed to create Gmail mailer", "error", err)
	}

	// Notification routing
	notifier := usecase.NewNotifier(log)
	notifier.RegisterHandler(templates.NewMissionScheduledHandler(mailer, log))
	notifier.RegisterHandler(templates.NewMissionCancelledHandler(mailer, log))
	notifier.RegisterHandler(templates.NewMissionReminderHandler(mailer, log))
	notifier.RegisterHandler(templates.NewInvoiceIssuedHandler(mailer, log))

	// Scheduling core and usecases
	checker := scheduling.NewChecker(usecase.NewResourceQuery(missionRepo, availabilityRepo, aircraftRepo))
	billing := usecase.NewBillingService(invoiceRepo, usecase.BillingRates{
		FlightCents:    cfg.FlightInstructionRateCents,
		GroundCents:    cfg.GroundInstructionRateCents,
		SimulatorCents: cfg.SimulatorInstructionRateCents,
	}, log)

	scheduler := usecase.NewMissionScheduler(
		missionRepo, enrollmentRepo, profileRepo, aircraftRepo, syllabusRepo,
		calendarRepo, checker, notifier, billing, log, appMetrics)
	progressService := usecase.NewProgressService(missionRepo, enrollmentRepo, syllabusRepo, log)
	planGenerator := usecase.NewPlanGenerator(
		cfg.OpenAIAPIKey, cfg.OpenAIModel,
		debriefRepo, syllabusRepo, missionRepo, log, appMetrics)

	// Start the reminder pass in a goroutine
	go func() {
		reminderTicker := time.NewTicker(cfg.ReminderPollInterval)
		defer reminderTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Reminder pass stopped")
				return
			case <-reminderTicker.C:
				scheduler.RunReminderPass(ctx)
			}
		}
	}()

	// Set up the HTTP server
	handler := api.NewHandler(
		scheduler, progressService, planGenerator, billing,
		availabilityRepo, aircraftRepo, syllabusRepo, enrollmentRepo,
		documentRepo, debriefRepo, invoiceRepo,
		cfg.AppVersion, log)
	router := api.NewRouter(handler, log)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Trainops Service stopped")
}
