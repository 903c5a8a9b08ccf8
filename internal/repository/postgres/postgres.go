package postgres

import (
	"database/sql"

	"carfleet-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CustomerRepository
	repository.LocationRepository
	repository.CatalogRepository
	repository.VehicleRepository
	repository.ReservationRepository
	repository.AgreementRepository
	repository.InvoiceRepository
	repository.BillingPaymentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		CustomerRepository:       NewCustomerRepository(db),
		LocationRepository:       NewLocationRepository(db),
		CatalogRepository:        NewCatalogRepository(db),
		VehicleRepository:        NewVehicleRepository(db),
		ReservationRepository:    NewReservationRepository(db),
		AgreementRepository:      NewAgreementRepository(db),
		InvoiceRepository:        NewInvoiceRepository(db),
		BillingPaymentRepository: NewBillingPaymentRepository(db),
	}
}
