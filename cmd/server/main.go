package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "carfleet-backend/internal/api/http"
	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/config"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/jobs"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/notify"
	"carfleet-backend/internal/payment"
	"carfleet-backend/internal/repository"
	"carfleet-backend/internal/repository/memory"
	"carfleet-backend/internal/repository/postgres"
	"carfleet-backend/internal/scheduler"
	"carfleet-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carfleet Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "driver", cfg.Database.Driver)

	// Initialize Repositories
	var (
		customerRepo    repository.CustomerRepository
		locationRepo    repository.LocationRepository
		catalogRepo     repository.CatalogRepository
		vehicleRepo     repository.VehicleRepository
		reservationRepo repository.ReservationRepository
		agreementRepo   repository.AgreementRepository
		invoiceRepo     repository.InvoiceRepository
		paymentRepo     repository.BillingPaymentRepository
	)

	switch cfg.Database.Driver {
	case "memory":
		logger.Info("Using in-memory entity store")
		store := memory.NewStore()
		customerRepo = store.CustomerRepository
		locationRepo = store.LocationRepository
		catalogRepo = store.CatalogRepository
		vehicleRepo = store.VehicleRepository
		reservationRepo = store.ReservationRepository
		agreementRepo = store.AgreementRepository
		invoiceRepo = store.InvoiceRepository
		paymentRepo = store.BillingPaymentRepository

	case "postgres":
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
		logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

		store := postgres.NewStore(db)
		customerRepo = store.CustomerRepository
		locationRepo = store.LocationRepository
		catalogRepo = store.CatalogRepository
		vehicleRepo = store.VehicleRepository
		reservationRepo = store.ReservationRepository
		agreementRepo = store.AgreementRepository
		invoiceRepo = store.InvoiceRepository
		paymentRepo = store.BillingPaymentRepository
	}

	// Initialize outbound ports
	var notifier service.Notifier
	if cfg.SendGrid.APIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid API key not configured, notifications are recorded in memory only")
		notifier = notify.NewInMemoryNotifier()
	}
	gateway := payment.NewFakeGateway()
	systemClock := clock.NewSystemClock()

	// Pricing engine and penalty tariffs
	pricingPolicy := domain.StandardPricingPolicy()
	penaltyRates := domain.PenaltyRates{
		DailyMileageAllowance:  domain.Kilometers{Value: cfg.Pricing.DailyMileageAllowanceKm},
		MileageOverageFeePerKm: domain.Money{Cents: cfg.Pricing.MileageOverageFeeCents},
		FuelRefillCharge:       domain.Money{Cents: cfg.Pricing.FuelRefillChargeCents},
		LateFeePerHour:         domain.Money{Cents: cfg.Pricing.LateFeePerHourCents},
	}

	// Initialize Services
	reservationSvc := service.NewReservationService(
		reservationRepo,
		customerRepo,
		catalogRepo,
		locationRepo,
		notifier,
		systemClock,
	)
	rentalSvc := service.NewRentalService(
		reservationRepo,
		vehicleRepo,
		agreementRepo,
		invoiceRepo,
		pricingPolicy,
		penaltyRates,
		systemClock,
	)
	accountingSvc := service.NewAccountingService(
		customerRepo,
		invoiceRepo,
		paymentRepo,
		gateway,
		notifier,
	)
	maintenanceSvc := service.NewMaintenanceService(vehicleRepo, systemClock)
	inventorySvc := service.NewInventoryService(vehicleRepo, systemClock)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(agreementRepo, vehicleRepo, locationRepo, notifier, systemClock, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Initialize HTTP API
	router := httpapi.NewRouter(reservationSvc, rentalSvc, accountingSvc, maintenanceSvc, inventorySvc)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
