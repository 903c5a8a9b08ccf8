package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository/memory"
)

func seedFleet(t *testing.T) (*memory.Store, *clock.FixedClock, *domain.Location, *domain.VehicleClass) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	clk := clock.NewFixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	location := &domain.Location{ID: uuid.New(), Name: "Airport", Address: "2 Runway Rd"}
	require.NoError(t, store.LocationRepository.Create(ctx, location))

	class := &domain.VehicleClass{ID: uuid.New(), Name: "Compact", BaseRate: domain.NewMoney(5000)}
	require.NoError(t, store.CatalogRepository.CreateVehicleClass(ctx, class))

	return store, clk, location, class
}

func addVehicle(t *testing.T, store *memory.Store, location *domain.Location, class *domain.VehicleClass, plate string, odometer int64, state domain.VehicleState) *domain.Vehicle {
	t.Helper()
	vehicle := &domain.Vehicle{
		ID:             uuid.New(),
		LicensePlate:   plate,
		Odometer:       domain.NewKilometers(odometer),
		FuelLevel:      domain.NewFuelLevel(1.0),
		VehicleClassID: class.ID,
		VehicleClass:   class,
		LocationID:     location.ID,
		State:          state,
	}
	require.NoError(t, store.VehicleRepository.Create(context.Background(), vehicle))
	return vehicle
}

func TestRegisterServicePlan(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	ctx := context.Background()
	vehicle := addVehicle(t, store, location, class, "ABC-123", 10000, domain.VehicleStateAvailable)

	svc := NewMaintenanceService(store.VehicleRepository, clk)
	record, err := svc.RegisterServicePlan(ctx, vehicle.ID, "oil change", domain.NewKilometers(5000), 365*24*time.Hour)
	require.NoError(t, err)

	// The registration instant is the baseline for both thresholds
	assert.Equal(t, "oil change", record.ServiceType)
	require.NotNil(t, record.LastServiceDate)
	assert.Equal(t, clk.Now(), *record.LastServiceDate)
	require.NotNil(t, record.LastServiceOdometer)
	assert.Equal(t, int64(10000), record.LastServiceOdometer.Value)
	require.NotNil(t, record.OdometerThreshold)
	assert.Equal(t, int64(5000), record.OdometerThreshold.Value)
	require.NotNil(t, record.TimeThreshold)

	stored, err := store.VehicleRepository.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	require.Len(t, stored.MaintenanceRecords, 1)
	assert.False(t, stored.IsMaintenanceDue(clk.Now()))

	// Nearly five thousand kilometers later the plan comes due
	stored.Odometer = domain.NewKilometers(14600)
	require.NoError(t, store.VehicleRepository.Update(ctx, stored))
	assert.True(t, stored.IsMaintenanceDue(clk.Now()))
}

func TestRegisterServicePlanZeroThresholds(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	vehicle := addVehicle(t, store, location, class, "ABC-123", 10000, domain.VehicleStateAvailable)

	svc := NewMaintenanceService(store.VehicleRepository, clk)
	record, err := svc.RegisterServicePlan(context.Background(), vehicle.ID, "inspection", domain.Kilometers{}, 0)
	require.NoError(t, err)

	assert.Nil(t, record.OdometerThreshold)
	assert.Nil(t, record.TimeThreshold)
	assert.False(t, record.IsDue(domain.NewKilometers(999999), clk.Now().Add(10*365*24*time.Hour)))
}

func TestRegisterServicePlanUnknownVehicle(t *testing.T) {
	store, clk, _, _ := seedFleet(t)

	svc := NewMaintenanceService(store.VehicleRepository, clk)
	_, err := svc.RegisterServicePlan(context.Background(), uuid.New(), "oil change", domain.NewKilometers(5000), 0)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestListDueVehicles(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	ctx := context.Background()

	fresh := addVehicle(t, store, location, class, "FRESH-1", 10000, domain.VehicleStateAvailable)
	worn := addVehicle(t, store, location, class, "WORN-1", 10000, domain.VehicleStateAvailable)

	svc := NewMaintenanceService(store.VehicleRepository, clk)
	_, err := svc.RegisterServicePlan(ctx, fresh.ID, "oil change", domain.NewKilometers(5000), 0)
	require.NoError(t, err)
	_, err = svc.RegisterServicePlan(ctx, worn.ID, "oil change", domain.NewKilometers(5000), 0)
	require.NoError(t, err)

	worn.Odometer = domain.NewKilometers(14800)
	require.NoError(t, store.VehicleRepository.Update(ctx, worn))

	due, err := svc.ListDueVehicles(ctx, location.ID)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "WORN-1", due[0].LicensePlate)
}

func TestGetAvailability(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	ctx := context.Background()

	addVehicle(t, store, location, class, "AVL-1", 10000, domain.VehicleStateAvailable)
	addVehicle(t, store, location, class, "AVL-2", 10000, domain.VehicleStateAvailable)
	addVehicle(t, store, location, class, "OUT-1", 10000, domain.VehicleStateRented)

	// A vehicle due for service counts as a maintenance hold whatever its
	// state, so the rented one below still shows up in the report.
	held := addVehicle(t, store, location, class, "HELD-1", 10000, domain.VehicleStateAvailable)
	heldOut := addVehicle(t, store, location, class, "HELD-2", 10000, domain.VehicleStateRented)
	maintenanceSvc := NewMaintenanceService(store.VehicleRepository, clk)
	for _, v := range []*domain.Vehicle{held, heldOut} {
		_, err := maintenanceSvc.RegisterServicePlan(ctx, v.ID, "oil change", domain.NewKilometers(5000), 0)
		require.NoError(t, err)
		v.Odometer = domain.NewKilometers(14800)
		require.NoError(t, store.VehicleRepository.Update(ctx, v))
	}

	svc := NewInventoryService(store.VehicleRepository, clk)
	availability, err := svc.GetAvailability(ctx, location.ID)
	require.NoError(t, err)

	require.Contains(t, availability, "Compact")
	assert.Equal(t, 2, availability["Compact"].Available)
	assert.Equal(t, 2, availability["Compact"].MaintenanceHold)
}

func TestGetAvailabilityAllStockOut(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	ctx := context.Background()

	// A class whose only vehicle is rented still gets a zero-count entry.
	addVehicle(t, store, location, class, "OUT-1", 10000, domain.VehicleStateRented)

	svc := NewInventoryService(store.VehicleRepository, clk)
	availability, err := svc.GetAvailability(ctx, location.ID)
	require.NoError(t, err)

	require.Contains(t, availability, "Compact")
	assert.Equal(t, 0, availability["Compact"].Available)
	assert.Equal(t, 0, availability["Compact"].MaintenanceHold)
}

func TestGetAvailabilityOtherLocation(t *testing.T) {
	store, clk, location, class := seedFleet(t)
	ctx := context.Background()
	addVehicle(t, store, location, class, "AVL-1", 10000, domain.VehicleStateAvailable)

	other := &domain.Location{ID: uuid.New(), Name: "Harbor", Address: "3 Pier Ave"}
	require.NoError(t, store.LocationRepository.Create(ctx, other))

	svc := NewInventoryService(store.VehicleRepository, clk)
	availability, err := svc.GetAvailability(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, availability)
}
