package service

import (
	"context"

	"github.com/google/uuid"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type inventoryService struct {
	vehicleRepo repository.VehicleRepository
	clock       clock.Clock
}

func NewInventoryService(vehicleRepo repository.VehicleRepository, clk clock.Clock) InventoryService {
	return &inventoryService{vehicleRepo: vehicleRepo, clock: clk}
}

// GetAvailability breaks down a location's fleet by vehicle class name.
// Every class present at the location gets an entry. A vehicle due for
// maintenance counts as a maintenance hold whatever its state; otherwise
// only AVAILABLE vehicles count as available stock.
func (s *inventoryService) GetAvailability(ctx context.Context, locationID uuid.UUID) (map[string]ClassAvailability, error) {
	vehicles, err := s.vehicleRepo.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	availability := make(map[string]ClassAvailability)
	for i := range vehicles {
		v := &vehicles[i]
		className := v.VehicleClassID.String()
		if v.VehicleClass != nil {
			className = v.VehicleClass.Name
		}
		entry := availability[className]
		if v.IsMaintenanceDue(now) {
			entry.MaintenanceHold++
		} else if v.State == domain.VehicleStateAvailable {
			entry.Available++
		}
		availability[className] = entry
	}
	return availability, nil
}
