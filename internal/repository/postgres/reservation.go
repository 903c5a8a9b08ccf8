package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	var insuranceID interface{}
	if res.Insurance != nil {
		insuranceID = res.Insurance.ID
	}

	query := `INSERT INTO reservations (id, customer_id, vehicle_class_id, pickup_location_id, return_location_id, pickup_time, return_time, deposit_cents, insurance_tier_id, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, res.ID, res.CustomerID, res.VehicleClassID, res.PickupLocationID, res.ReturnLocationID,
		res.PickupTime, res.ReturnTime, res.DepositAmount.Cents, insuranceID, res.Status)
	if err != nil {
		return err
	}

	// Add-on selection is ordered and may repeat, so it keeps its position.
	for i, addOn := range res.AddOns {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO reservation_add_ons (reservation_id, position, add_on_id) VALUES ($1, $2, $3)`,
			res.ID, i, addOn.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	return getReservation(ctx, r.db, id)
}

func (r *reservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	query := `UPDATE reservations SET pickup_time=$1, return_time=$2, status=$3 WHERE id=$4`
	result, err := r.db.ExecContext(ctx, query, res.PickupTime, res.ReturnTime, res.Status, res.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT id, customer_id, vehicle_class_id, pickup_location_id, return_location_id, pickup_time, return_time, deposit_cents, insurance_tier_id, status
	          FROM reservations`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reservations {
		if err := hydrateReservation(ctx, r.db, &reservations[i]); err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	var insuranceID uuid.NullUUID
	err := row.Scan(&res.ID, &res.CustomerID, &res.VehicleClassID, &res.PickupLocationID, &res.ReturnLocationID,
		&res.PickupTime, &res.ReturnTime, &res.DepositAmount.Cents, &insuranceID, &res.Status)
	if err != nil {
		return nil, err
	}
	if insuranceID.Valid {
		res.Insurance = &domain.InsuranceTier{ID: insuranceID.UUID}
	}
	return res, nil
}

func getReservation(ctx context.Context, db *sql.DB, id uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT id, customer_id, vehicle_class_id, pickup_location_id, return_location_id, pickup_time, return_time, deposit_cents, insurance_tier_id, status
	          FROM reservations WHERE id = $1`
	res, err := scanReservation(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := hydrateReservation(ctx, db, res); err != nil {
		return nil, err
	}
	return res, nil
}

func hydrateReservation(ctx context.Context, db *sql.DB, res *domain.Reservation) error {
	customer := &domain.Customer{}
	err := db.QueryRowContext(ctx, `SELECT id, first_name, last_name, email FROM customers WHERE id = $1`, res.CustomerID).
		Scan(&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email)
	if err != nil {
		return err
	}
	res.Customer = customer

	class, err := getVehicleClass(ctx, db, res.VehicleClassID)
	if err != nil {
		return err
	}
	res.VehicleClass = class

	if res.Insurance != nil {
		tier := &domain.InsuranceTier{}
		err := db.QueryRowContext(ctx, `SELECT id, name, daily_rate_cents FROM insurance_tiers WHERE id = $1`, res.Insurance.ID).
			Scan(&tier.ID, &tier.Name, &tier.DailyRate.Cents)
		if err != nil {
			return err
		}
		res.Insurance = tier
	}

	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.name, a.daily_rate_cents
		 FROM reservation_add_ons ra JOIN add_ons a ON a.id = ra.add_on_id
		 WHERE ra.reservation_id = $1 ORDER BY ra.position`, res.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	res.AddOns = nil
	for rows.Next() {
		var addOn domain.AddOn
		if err := rows.Scan(&addOn.ID, &addOn.Name, &addOn.DailyRate.Cents); err != nil {
			return err
		}
		res.AddOns = append(res.AddOns, addOn)
	}
	return rows.Err()
}
