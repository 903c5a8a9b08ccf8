package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/repository"
)

type maintenanceService struct {
	vehicleRepo repository.VehicleRepository
	clock       clock.Clock
}

func NewMaintenanceService(vehicleRepo repository.VehicleRepository, clk clock.Clock) MaintenanceService {
	return &maintenanceService{vehicleRepo: vehicleRepo, clock: clk}
}

// RegisterServicePlan attaches a maintenance schedule to a vehicle. The
// current time and odometer reading become the plan's baseline, so the
// thresholds count from registration.
func (s *maintenanceService) RegisterServicePlan(ctx context.Context, vehicleID uuid.UUID, serviceType string, odometerThreshold domain.Kilometers, timeThreshold time.Duration) (*domain.MaintenanceRecord, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	lastOdometer := vehicle.Odometer
	record := &domain.MaintenanceRecord{
		ID:                  uuid.New(),
		VehicleID:           vehicle.ID,
		ServiceType:         serviceType,
		LastServiceDate:     &now,
		LastServiceOdometer: &lastOdometer,
	}
	if odometerThreshold.Value > 0 {
		record.OdometerThreshold = &odometerThreshold
	}
	if timeThreshold > 0 {
		record.TimeThreshold = &timeThreshold
	}

	if err := s.vehicleRepo.AddMaintenanceRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add maintenance record: %w", err)
	}

	logger.Info("Service plan registered", "vehicle_id", vehicle.ID, "service_type", serviceType)
	return record, nil
}

// ListDueVehicles returns the vehicles at a location with at least one
// maintenance plan currently due.
func (s *maintenanceService) ListDueVehicles(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicleRepo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	due := make([]domain.Vehicle, 0)
	for i := range vehicles {
		if vehicles[i].IsMaintenanceDue(now) {
			due = append(due, vehicles[i])
		}
	}
	return due, nil
}
