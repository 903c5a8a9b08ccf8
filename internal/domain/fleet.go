package domain

import (
	"time"

	"github.com/google/uuid"
)

type VehicleState string

const (
	VehicleStateAvailable    VehicleState = "AVAILABLE"
	VehicleStateReserved     VehicleState = "RESERVED"
	VehicleStateRented       VehicleState = "RENTED"
	VehicleStateOutOfService VehicleState = "OUT_OF_SERVICE"
	VehicleStateCleaning     VehicleState = "CLEANING"
)

// Location is a rental branch.
type Location struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// VehicleClass is a rate-catalog entry; BaseRate is the per-day price.
type VehicleClass struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	BaseRate Money     `json:"base_rate"`
}

type AddOn struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DailyRate Money     `json:"daily_rate"`
}

type InsuranceTier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DailyRate Money     `json:"daily_rate"`
}

// MaintenanceDueMarginKm widens the odometer check so a vehicle is flagged
// shortly before it actually hits the service threshold.
const MaintenanceDueMarginKm = 500

// MaintenanceRecord is one service plan on a vehicle. A record with neither
// threshold is never due.
type MaintenanceRecord struct {
	ID                  uuid.UUID      `json:"id"`
	VehicleID           uuid.UUID      `json:"vehicle_id"`
	ServiceType         string         `json:"service_type"`
	OdometerThreshold   *Kilometers    `json:"odometer_threshold,omitempty"`
	TimeThreshold       *time.Duration `json:"time_threshold,omitempty"`
	LastServiceDate     *time.Time     `json:"last_service_date,omitempty"`
	LastServiceOdometer *Kilometers    `json:"last_service_odometer,omitempty"`
}

// IsDue reports whether this plan is due for a vehicle at the given odometer
// reading. The odometer and time conditions are independent; either alone
// makes the record due.
func (r *MaintenanceRecord) IsDue(odometer Kilometers, now time.Time) bool {
	if r.OdometerThreshold != nil && r.LastServiceOdometer != nil {
		kmSinceService := odometer.Value - r.LastServiceOdometer.Value
		kmUntilDue := r.OdometerThreshold.Value - kmSinceService
		if kmUntilDue <= MaintenanceDueMarginKm {
			return true
		}
	}

	if r.TimeThreshold != nil && r.LastServiceDate != nil {
		if now.Sub(*r.LastServiceDate) >= *r.TimeThreshold {
			return true
		}
	}

	return false
}

type Vehicle struct {
	ID                 uuid.UUID           `json:"id"`
	LicensePlate       string              `json:"license_plate"`
	Odometer           Kilometers          `json:"odometer"`
	FuelLevel          FuelLevel           `json:"fuel_level"`
	VehicleClassID     uuid.UUID           `json:"vehicle_class_id"`
	VehicleClass       *VehicleClass       `json:"vehicle_class,omitempty"` // Populated when fetching vehicle details
	LocationID         uuid.UUID           `json:"location_id"`
	State              VehicleState        `json:"state"`
	MaintenanceRecords []MaintenanceRecord `json:"maintenance_records,omitempty"`
}

// IsMaintenanceDue reports whether any of the vehicle's maintenance records
// is due.
func (v *Vehicle) IsMaintenanceDue(now time.Time) bool {
	for i := range v.MaintenanceRecords {
		if v.MaintenanceRecords[i].IsDue(v.Odometer, now) {
			return true
		}
	}
	return false
}

// CanBeAssigned reports whether the vehicle may be handed over to a renter.
func (v *Vehicle) CanBeAssigned(now time.Time) bool {
	if v.State != VehicleStateAvailable {
		return false
	}
	return !v.IsMaintenanceDue(now)
}
