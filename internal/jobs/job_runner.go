package jobs

import (
	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/config"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/repository"
	"carfleet-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	agreementRepo repository.AgreementRepository
	vehicleRepo   repository.VehicleRepository
	locationRepo  repository.LocationRepository
	notifier      service.Notifier
	clock         clock.Clock
	config        *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	agreementRepo repository.AgreementRepository,
	vehicleRepo repository.VehicleRepository,
	locationRepo repository.LocationRepository,
	notifier service.Notifier,
	clk clock.Clock,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		agreementRepo: agreementRepo,
		vehicleRepo:   vehicleRepo,
		locationRepo:  locationRepo,
		notifier:      notifier,
		clock:         clk,
		config:        cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.NotifyOverdueRentals()
	jr.SendMaintenanceAlerts()
}
