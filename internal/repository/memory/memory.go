package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

// Store keeps every entity kind in a map keyed by identifier. It backs the
// dev server and the service tests; relational integrity beyond what the
// services check is deliberately not enforced.
type Store struct {
	repository.CustomerRepository
	repository.LocationRepository
	repository.CatalogRepository
	repository.VehicleRepository
	repository.ReservationRepository
	repository.AgreementRepository
	repository.InvoiceRepository
	repository.BillingPaymentRepository
}

type data struct {
	mu             sync.RWMutex
	customers      map[uuid.UUID]*domain.Customer
	locations      map[uuid.UUID]*domain.Location
	vehicleClasses map[uuid.UUID]*domain.VehicleClass
	addOns         map[uuid.UUID]*domain.AddOn
	insuranceTiers map[uuid.UUID]*domain.InsuranceTier
	vehicles       map[uuid.UUID]*domain.Vehicle
	reservations   map[uuid.UUID]*domain.Reservation
	agreements     map[uuid.UUID]*domain.RentalAgreement
	invoices       map[uuid.UUID]*domain.Invoice
	payments       map[uuid.UUID]*domain.BillingPayment
	paymentOrder   []uuid.UUID
}

func NewStore() *Store {
	d := &data{
		customers:      make(map[uuid.UUID]*domain.Customer),
		locations:      make(map[uuid.UUID]*domain.Location),
		vehicleClasses: make(map[uuid.UUID]*domain.VehicleClass),
		addOns:         make(map[uuid.UUID]*domain.AddOn),
		insuranceTiers: make(map[uuid.UUID]*domain.InsuranceTier),
		vehicles:       make(map[uuid.UUID]*domain.Vehicle),
		reservations:   make(map[uuid.UUID]*domain.Reservation),
		agreements:     make(map[uuid.UUID]*domain.RentalAgreement),
		invoices:       make(map[uuid.UUID]*domain.Invoice),
		payments:       make(map[uuid.UUID]*domain.BillingPayment),
	}
	return &Store{
		CustomerRepository:       &customerRepo{d},
		LocationRepository:       &locationRepo{d},
		CatalogRepository:        &catalogRepo{d},
		VehicleRepository:        &vehicleRepo{d},
		ReservationRepository:    &reservationRepo{d},
		AgreementRepository:      &agreementRepo{d},
		InvoiceRepository:        &invoiceRepo{d},
		BillingPaymentRepository: &paymentRepo{d},
	}
}

// Customers

type customerRepo struct{ d *data }

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.customers[customer.ID] = customer
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	customer, ok := r.d.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// Locations

type locationRepo struct{ d *data }

func (r *locationRepo) Create(ctx context.Context, location *domain.Location) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.locations[location.ID] = location
	return nil
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	location, ok := r.d.locations[id]
	if !ok {
		return nil, domain.ErrLocationNotFound
	}
	return location, nil
}

func (r *locationRepo) List(ctx context.Context) ([]domain.Location, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	locations := make([]domain.Location, 0, len(r.d.locations))
	for _, loc := range r.d.locations {
		locations = append(locations, *loc)
	}
	return locations, nil
}

// Catalog

type catalogRepo struct{ d *data }

func (r *catalogRepo) CreateVehicleClass(ctx context.Context, class *domain.VehicleClass) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.vehicleClasses[class.ID] = class
	return nil
}

func (r *catalogRepo) GetVehicleClass(ctx context.Context, id uuid.UUID) (*domain.VehicleClass, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	class, ok := r.d.vehicleClasses[id]
	if !ok {
		return nil, domain.ErrVehicleClassNotFound
	}
	return class, nil
}

func (r *catalogRepo) CreateAddOn(ctx context.Context, addOn *domain.AddOn) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.addOns[addOn.ID] = addOn
	return nil
}

func (r *catalogRepo) GetAddOn(ctx context.Context, id uuid.UUID) (*domain.AddOn, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	addOn, ok := r.d.addOns[id]
	if !ok {
		return nil, domain.ErrAddOnNotFound
	}
	return addOn, nil
}

func (r *catalogRepo) CreateInsuranceTier(ctx context.Context, tier *domain.InsuranceTier) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.insuranceTiers[tier.ID] = tier
	return nil
}

func (r *catalogRepo) GetInsuranceTier(ctx context.Context, id uuid.UUID) (*domain.InsuranceTier, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	tier, ok := r.d.insuranceTiers[id]
	if !ok {
		return nil, domain.ErrInsuranceNotFound
	}
	return tier, nil
}

// Vehicles

type vehicleRepo struct{ d *data }

func (r *vehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	vehicle, ok := r.d.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.vehicles[vehicle.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	r.d.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *vehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	vehicles := make([]domain.Vehicle, 0, len(r.d.vehicles))
	for _, v := range r.d.vehicles {
		vehicles = append(vehicles, *v)
	}
	return vehicles, nil
}

func (r *vehicleRepo) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var vehicles []domain.Vehicle
	for _, v := range r.d.vehicles {
		if v.LocationID == locationID {
			vehicles = append(vehicles, *v)
		}
	}
	return vehicles, nil
}

func (r *vehicleRepo) AddMaintenanceRecord(ctx context.Context, record *domain.MaintenanceRecord) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	vehicle, ok := r.d.vehicles[record.VehicleID]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	vehicle.MaintenanceRecords = append(vehicle.MaintenanceRecords, *record)
	return nil
}

// Reservations

type reservationRepo struct{ d *data }

func (r *reservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.reservations[reservation.ID] = reservation
	return nil
}

func (r *reservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	reservation, ok := r.d.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return reservation, nil
}

func (r *reservationRepo) Update(ctx context.Context, reservation *domain.Reservation) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.reservations[reservation.ID]; !ok {
		return domain.ErrReservationNotFound
	}
	r.d.reservations[reservation.ID] = reservation
	return nil
}

func (r *reservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	reservations := make([]domain.Reservation, 0, len(r.d.reservations))
	for _, res := range r.d.reservations {
		reservations = append(reservations, *res)
	}
	return reservations, nil
}

// Rental agreements

type agreementRepo struct{ d *data }

func (r *agreementRepo) Create(ctx context.Context, agreement *domain.RentalAgreement) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.agreements[agreement.ID] = agreement
	return nil
}

func (r *agreementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RentalAgreement, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	agreement, ok := r.d.agreements[id]
	if !ok {
		return nil, domain.ErrAgreementNotFound
	}
	return agreement, nil
}

func (r *agreementRepo) Update(ctx context.Context, agreement *domain.RentalAgreement) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.agreements[agreement.ID]; !ok {
		return domain.ErrAgreementNotFound
	}
	r.d.agreements[agreement.ID] = agreement
	return nil
}

func (r *agreementRepo) List(ctx context.Context) ([]domain.RentalAgreement, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	agreements := make([]domain.RentalAgreement, 0, len(r.d.agreements))
	for _, a := range r.d.agreements {
		agreements = append(agreements, *a)
	}
	return agreements, nil
}

// Invoices

type invoiceRepo struct{ d *data }

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.invoices[invoice.ID] = invoice
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	invoice, ok := r.d.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (r *invoiceRepo) GetByAgreementID(ctx context.Context, agreementID uuid.UUID) (*domain.Invoice, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, invoice := range r.d.invoices {
		if invoice.AgreementID == agreementID {
			return invoice, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *invoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.invoices[invoice.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	r.d.invoices[invoice.ID] = invoice
	return nil
}

// Billing payments

type paymentRepo struct{ d *data }

func (r *paymentRepo) Create(ctx context.Context, payment *domain.BillingPayment) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	r.d.payments[payment.ID] = payment
	r.d.paymentOrder = append(r.d.paymentOrder, payment.ID)
	return nil
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.BillingPayment, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var payments []domain.BillingPayment
	for _, id := range r.d.paymentOrder {
		if p := r.d.payments[id]; p.InvoiceID == invoiceID {
			payments = append(payments, *p)
		}
	}
	return payments, nil
}
