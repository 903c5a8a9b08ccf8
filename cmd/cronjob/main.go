package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/config"
	"carfleet-backend/internal/jobs"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/notify"
	"carfleet-backend/internal/repository"
	"carfleet-backend/internal/repository/memory"
	"carfleet-backend/internal/repository/postgres"
	"carfleet-backend/internal/scheduler"
	"carfleet-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'notify-overdue-rentals', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carfleet Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Repositories
	var (
		agreementRepo repository.AgreementRepository
		vehicleRepo   repository.VehicleRepository
		locationRepo  repository.LocationRepository
	)

	switch cfg.Database.Driver {
	case "memory":
		logger.Info("Using in-memory entity store")
		store := memory.NewStore()
		agreementRepo = store.AgreementRepository
		vehicleRepo = store.VehicleRepository
		locationRepo = store.LocationRepository

	case "postgres":
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")

		store := postgres.NewStore(db)
		agreementRepo = store.AgreementRepository
		vehicleRepo = store.VehicleRepository
		locationRepo = store.LocationRepository
	}

	// Initialize notifier
	var notifier service.Notifier
	if cfg.SendGrid.APIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid API key not configured, notifications are recorded in memory only")
		notifier = notify.NewInMemoryNotifier()
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(agreementRepo, vehicleRepo, locationRepo, notifier, clock.NewSystemClock(), cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "notify-overdue-rentals":
		jobRunner.NotifyOverdueRentals()
	case "send-maintenance-alerts":
		jobRunner.SendMaintenanceAlerts()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - notify-overdue-rentals\n")
		fmt.Printf("  - send-maintenance-alerts\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
