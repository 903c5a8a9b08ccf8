package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (id, license_plate, odometer_km, fuel_level, vehicle_class_id, location_id, state)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.LicensePlate, v.Odometer.Value, v.FuelLevel.Value, v.VehicleClassID, v.LocationID, v.State)
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return getVehicle(ctx, r.db, id)
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET odometer_km=$1, fuel_level=$2, location_id=$3, state=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, v.Odometer.Value, v.FuelLevel.Value, v.LocationID, v.State, v.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	return r.list(ctx, `SELECT id, license_plate, odometer_km, fuel_level, vehicle_class_id, location_id, state FROM vehicles`)
}

func (r *vehicleRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Vehicle, error) {
	return r.list(ctx, `SELECT id, license_plate, odometer_km, fuel_level, vehicle_class_id, location_id, state FROM vehicles WHERE location_id = $1`, locationID)
}

func (r *vehicleRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.LicensePlate, &v.Odometer.Value, &v.FuelLevel.Value, &v.VehicleClassID, &v.LocationID, &v.State); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range vehicles {
		if err := hydrateVehicle(ctx, r.db, &vehicles[i]); err != nil {
			return nil, err
		}
	}
	return vehicles, nil
}

func (r *vehicleRepository) AddMaintenanceRecord(ctx context.Context, rec *domain.MaintenanceRecord) error {
	var odoThreshold, timeThresholdSecs, lastOdo sql.NullInt64
	var lastDate sql.NullTime
	if rec.OdometerThreshold != nil {
		odoThreshold = sql.NullInt64{Int64: rec.OdometerThreshold.Value, Valid: true}
	}
	if rec.TimeThreshold != nil {
		timeThresholdSecs = sql.NullInt64{Int64: int64(rec.TimeThreshold.Seconds()), Valid: true}
	}
	if rec.LastServiceOdometer != nil {
		lastOdo = sql.NullInt64{Int64: rec.LastServiceOdometer.Value, Valid: true}
	}
	if rec.LastServiceDate != nil {
		lastDate = sql.NullTime{Time: *rec.LastServiceDate, Valid: true}
	}

	query := `INSERT INTO maintenance_records (id, vehicle_id, service_type, odometer_threshold_km, time_threshold_seconds, last_service_date, last_service_odometer_km)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.VehicleID, rec.ServiceType, odoThreshold, timeThresholdSecs, lastDate, lastOdo)
	return err
}

func getVehicle(ctx context.Context, db *sql.DB, id uuid.UUID) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, license_plate, odometer_km, fuel_level, vehicle_class_id, location_id, state FROM vehicles WHERE id = $1`
	err := db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.LicensePlate, &v.Odometer.Value, &v.FuelLevel.Value, &v.VehicleClassID, &v.LocationID, &v.State)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := hydrateVehicle(ctx, db, v); err != nil {
		return nil, err
	}
	return v, nil
}

func hydrateVehicle(ctx context.Context, db *sql.DB, v *domain.Vehicle) error {
	class, err := getVehicleClass(ctx, db, v.VehicleClassID)
	if err != nil {
		return err
	}
	v.VehicleClass = class

	records, err := listMaintenanceRecords(ctx, db, v.ID)
	if err != nil {
		return err
	}
	v.MaintenanceRecords = records
	return nil
}

func listMaintenanceRecords(ctx context.Context, db *sql.DB, vehicleID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	query := `SELECT id, vehicle_id, service_type, odometer_threshold_km, time_threshold_seconds, last_service_date, last_service_odometer_km
	          FROM maintenance_records WHERE vehicle_id = $1 ORDER BY seq`
	rows, err := db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MaintenanceRecord
	for rows.Next() {
		var rec domain.MaintenanceRecord
		var odoThreshold, timeThresholdSecs, lastOdo sql.NullInt64
		var lastDate sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.VehicleID, &rec.ServiceType, &odoThreshold, &timeThresholdSecs, &lastDate, &lastOdo); err != nil {
			return nil, err
		}
		if odoThreshold.Valid {
			km := domain.NewKilometers(odoThreshold.Int64)
			rec.OdometerThreshold = &km
		}
		if timeThresholdSecs.Valid {
			d := time.Duration(timeThresholdSecs.Int64) * time.Second
			rec.TimeThreshold = &d
		}
		if lastDate.Valid {
			t := lastDate.Time
			rec.LastServiceDate = &t
		}
		if lastOdo.Valid {
			km := domain.NewKilometers(lastOdo.Int64)
			rec.LastServiceOdometer = &km
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
