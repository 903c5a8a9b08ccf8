package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
)

// PaymentGateway is the payment port. Both operations return the gateway's
// transaction id on success.
type PaymentGateway interface {
	AuthorizeDeposit(ctx context.Context, customer *domain.Customer, amount domain.Money) (string, error)
	FinalizePayment(ctx context.Context, customer *domain.Customer, amount domain.Money) (string, error)
}

// Notifier is the customer-notification port. Delivery is best-effort; the
// services treat failures as non-fatal.
type Notifier interface {
	Send(ctx context.Context, customer *domain.Customer, message string) error
}

type ReservationService interface {
	CreateReservation(ctx context.Context, req *CreateReservationRequest) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error)
}

type RentalService interface {
	PickupVehicle(ctx context.Context, reservationID, vehicleID uuid.UUID, pickupToken string) (*domain.RentalAgreement, error)
	ReturnVehicle(ctx context.Context, agreementID uuid.UUID, endOdometer domain.Kilometers, endFuel domain.FuelLevel) (*domain.Invoice, error)
	ExtendRental(ctx context.Context, agreementID uuid.UUID, newDueTime time.Time) error
}

type AccountingService interface {
	CaptureDeposit(ctx context.Context, customerID uuid.UUID, amount domain.Money) error
	FinalizePayment(ctx context.Context, invoiceID uuid.UUID) (*domain.BillingPayment, error)
}

type MaintenanceService interface {
	RegisterServicePlan(ctx context.Context, vehicleID uuid.UUID, serviceType string, odometerThreshold domain.Kilometers, timeThreshold time.Duration) (*domain.MaintenanceRecord, error)
	ListDueVehicles(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error)
}

// ClassAvailability is the per-class breakdown reported by the inventory
// service: vehicles free to rent versus held back for maintenance.
type ClassAvailability struct {
	Available       int `json:"available"`
	MaintenanceHold int `json:"maintenance_hold"`
}

type InventoryService interface {
	GetAvailability(ctx context.Context, locationID uuid.UUID) (map[string]ClassAvailability, error)
}

// CreateReservationRequest carries everything needed to book a vehicle
// class for a time window.
type CreateReservationRequest struct {
	CustomerID       uuid.UUID
	VehicleClassID   uuid.UUID
	PickupLocationID uuid.UUID
	ReturnLocationID uuid.UUID
	PickupTime       time.Time
	ReturnTime       time.Time
	DepositAmount    domain.Money
	AddOnIDs         []uuid.UUID // Ordered; may repeat
	InsuranceTierID  *uuid.UUID
}
