package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/service"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, req *service.CreateReservationRequest) (*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationService) CancelReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockRentalService struct {
	mock.Mock
}

func (m *MockRentalService) PickupVehicle(ctx context.Context, reservationID, vehicleID uuid.UUID, pickupToken string) (*domain.RentalAgreement, error) {
	args := m.Called(ctx, reservationID, vehicleID, pickupToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalAgreement), args.Error(1)
}

func (m *MockRentalService) ReturnVehicle(ctx context.Context, agreementID uuid.UUID, endOdometer domain.Kilometers, endFuel domain.FuelLevel) (*domain.Invoice, error) {
	args := m.Called(ctx, agreementID, endOdometer, endFuel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockRentalService) ExtendRental(ctx context.Context, agreementID uuid.UUID, newDueTime time.Time) error {
	args := m.Called(ctx, agreementID, newDueTime)
	return args.Error(0)
}

type MockAccountingService struct {
	mock.Mock
}

func (m *MockAccountingService) CaptureDeposit(ctx context.Context, customerID uuid.UUID, amount domain.Money) error {
	args := m.Called(ctx, customerID, amount)
	return args.Error(0)
}

func (m *MockAccountingService) FinalizePayment(ctx context.Context, invoiceID uuid.UUID) (*domain.BillingPayment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingPayment), args.Error(1)
}

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) RegisterServicePlan(ctx context.Context, vehicleID uuid.UUID, serviceType string, odometerThreshold domain.Kilometers, timeThreshold time.Duration) (*domain.MaintenanceRecord, error) {
	args := m.Called(ctx, vehicleID, serviceType, odometerThreshold, timeThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceRecord), args.Error(1)
}

func (m *MockMaintenanceService) ListDueVehicles(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetAvailability(ctx context.Context, locationID uuid.UUID) (map[string]service.ClassAvailability, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]service.ClassAvailability), args.Error(1)
}
