package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type agreementRepository struct {
	db *sql.DB
}

func NewAgreementRepository(db *sql.DB) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Create(ctx context.Context, a *domain.RentalAgreement) error {
	query := `INSERT INTO rental_agreements (id, reservation_id, vehicle_id, pickup_time, start_odometer_km, start_fuel, due_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.ReservationID, a.VehicleID, a.PickupTime, a.StartOdometer.Value, a.StartFuel.Value, a.DueTime)
	return err
}

func (r *agreementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RentalAgreement, error) {
	return getAgreement(ctx, r.db, id)
}

func (r *agreementRepository) Update(ctx context.Context, a *domain.RentalAgreement) error {
	var returnTime sql.NullTime
	var endOdometer sql.NullInt64
	var endFuel sql.NullFloat64
	if a.ReturnTime != nil {
		returnTime = sql.NullTime{Time: *a.ReturnTime, Valid: true}
	}
	if a.EndOdometer != nil {
		endOdometer = sql.NullInt64{Int64: a.EndOdometer.Value, Valid: true}
	}
	if a.EndFuel != nil {
		endFuel = sql.NullFloat64{Float64: a.EndFuel.Value, Valid: true}
	}

	query := `UPDATE rental_agreements SET due_time=$1, return_time=$2, end_odometer_km=$3, end_fuel=$4 WHERE id=$5`
	result, err := r.db.ExecContext(ctx, query, a.DueTime, returnTime, endOdometer, endFuel, a.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAgreementNotFound
	}
	return nil
}

func (r *agreementRepository) List(ctx context.Context) ([]domain.RentalAgreement, error) {
	query := `SELECT id, reservation_id, vehicle_id, pickup_time, start_odometer_km, start_fuel, due_time, return_time, end_odometer_km, end_fuel
	          FROM rental_agreements`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []domain.RentalAgreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range agreements {
		if err := hydrateAgreement(ctx, r.db, &agreements[i]); err != nil {
			return nil, err
		}
	}
	return agreements, nil
}

// getAgreement is shared with the invoice repository so a loaded invoice
// always carries its agreement, reservation and customer references.
func getAgreement(ctx context.Context, db *sql.DB, id uuid.UUID) (*domain.RentalAgreement, error) {
	query := `SELECT id, reservation_id, vehicle_id, pickup_time, start_odometer_km, start_fuel, due_time, return_time, end_odometer_km, end_fuel
	          FROM rental_agreements WHERE id = $1`
	a, err := scanAgreement(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAgreementNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := hydrateAgreement(ctx, db, a); err != nil {
		return nil, err
	}
	return a, nil
}

func hydrateAgreement(ctx context.Context, db *sql.DB, a *domain.RentalAgreement) error {
	reservation, err := getReservation(ctx, db, a.ReservationID)
	if err != nil {
		return err
	}
	a.Reservation = reservation

	vehicle, err := getVehicle(ctx, db, a.VehicleID)
	if err != nil {
		return err
	}
	a.Vehicle = vehicle
	return nil
}

func scanAgreement(row rowScanner) (*domain.RentalAgreement, error) {
	a := &domain.RentalAgreement{}
	var returnTime sql.NullTime
	var endOdometer sql.NullInt64
	var endFuel sql.NullFloat64
	err := row.Scan(&a.ID, &a.ReservationID, &a.VehicleID, &a.PickupTime, &a.StartOdometer.Value, &a.StartFuel.Value, &a.DueTime,
		&returnTime, &endOdometer, &endFuel)
	if err != nil {
		return nil, err
	}
	if returnTime.Valid {
		t := returnTime.Time
		a.ReturnTime = &t
	}
	if endOdometer.Valid {
		km := domain.NewKilometers(endOdometer.Int64)
		a.EndOdometer = &km
	}
	if endFuel.Valid {
		f := domain.NewFuelLevel(endFuel.Float64)
		a.EndFuel = &f
	}
	return a, nil
}
