package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateVehicleClass(ctx context.Context, class *domain.VehicleClass) error {
	query := `INSERT INTO vehicle_classes (id, name, base_rate_cents) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, class.ID, class.Name, class.BaseRate.Cents)
	return err
}

func (r *catalogRepository) GetVehicleClass(ctx context.Context, id uuid.UUID) (*domain.VehicleClass, error) {
	return getVehicleClass(ctx, r.db, id)
}

func (r *catalogRepository) CreateAddOn(ctx context.Context, addOn *domain.AddOn) error {
	query := `INSERT INTO add_ons (id, name, daily_rate_cents) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, addOn.ID, addOn.Name, addOn.DailyRate.Cents)
	return err
}

func (r *catalogRepository) GetAddOn(ctx context.Context, id uuid.UUID) (*domain.AddOn, error) {
	addOn := &domain.AddOn{}
	query := `SELECT id, name, daily_rate_cents FROM add_ons WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&addOn.ID, &addOn.Name, &addOn.DailyRate.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAddOnNotFound
	}
	if err != nil {
		return nil, err
	}
	return addOn, nil
}

func (r *catalogRepository) CreateInsuranceTier(ctx context.Context, tier *domain.InsuranceTier) error {
	query := `INSERT INTO insurance_tiers (id, name, daily_rate_cents) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, tier.ID, tier.Name, tier.DailyRate.Cents)
	return err
}

func (r *catalogRepository) GetInsuranceTier(ctx context.Context, id uuid.UUID) (*domain.InsuranceTier, error) {
	tier := &domain.InsuranceTier{}
	query := `SELECT id, name, daily_rate_cents FROM insurance_tiers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tier.ID, &tier.Name, &tier.DailyRate.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInsuranceNotFound
	}
	if err != nil {
		return nil, err
	}
	return tier, nil
}

// getVehicleClass is shared with the vehicle and reservation repositories
// for populating class references.
func getVehicleClass(ctx context.Context, db *sql.DB, id uuid.UUID) (*domain.VehicleClass, error) {
	class := &domain.VehicleClass{}
	query := `SELECT id, name, base_rate_cents FROM vehicle_classes WHERE id = $1`
	err := db.QueryRowContext(ctx, query, id).Scan(&class.ID, &class.Name, &class.BaseRate.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return class, nil
}
