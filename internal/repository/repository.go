package repository

import (
	"context"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
)

// Repositories return the domain not-found sentinels when an identifier is
// absent. Get methods populate directed references (customer, vehicle class,
// reservation) needed by the pricing engine.

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
}

type LocationRepository interface {
	Create(ctx context.Context, location *domain.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
}

// CatalogRepository holds the immutable rate catalog: vehicle classes,
// add-ons and insurance tiers.
type CatalogRepository interface {
	CreateVehicleClass(ctx context.Context, class *domain.VehicleClass) error
	GetVehicleClass(ctx context.Context, id uuid.UUID) (*domain.VehicleClass, error)
	CreateAddOn(ctx context.Context, addOn *domain.AddOn) error
	GetAddOn(ctx context.Context, id uuid.UUID) (*domain.AddOn, error)
	CreateInsuranceTier(ctx context.Context, tier *domain.InsuranceTier) error
	GetInsuranceTier(ctx context.Context, id uuid.UUID) (*domain.InsuranceTier, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error)
	AddMaintenanceRecord(ctx context.Context, record *domain.MaintenanceRecord) error
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	List(ctx context.Context) ([]domain.Reservation, error)
}

type AgreementRepository interface {
	Create(ctx context.Context, agreement *domain.RentalAgreement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RentalAgreement, error)
	Update(ctx context.Context, agreement *domain.RentalAgreement) error
	List(ctx context.Context) ([]domain.RentalAgreement, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	// GetByAgreementID is the idempotency lookup for vehicle return.
	GetByAgreementID(ctx context.Context, agreementID uuid.UUID) (*domain.Invoice, error)
	Update(ctx context.Context, invoice *domain.Invoice) error
}

type BillingPaymentRepository interface {
	Create(ctx context.Context, payment *domain.BillingPayment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.BillingPayment, error)
}
