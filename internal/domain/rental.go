package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusFailed  InvoiceStatus = "FAILED"
)

type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "SUCCESS"
	PaymentOutcomeFailure PaymentOutcome = "FAILURE"
)

type Reservation struct {
	ID               uuid.UUID         `json:"id"`
	CustomerID       uuid.UUID         `json:"customer_id"`
	Customer         *Customer         `json:"customer,omitempty"` // Populated when fetching reservation details
	VehicleClassID   uuid.UUID         `json:"vehicle_class_id"`
	VehicleClass     *VehicleClass     `json:"vehicle_class,omitempty"`
	PickupLocationID uuid.UUID         `json:"pickup_location_id"`
	ReturnLocationID uuid.UUID         `json:"return_location_id"`
	PickupTime       time.Time         `json:"pickup_time"`
	ReturnTime       time.Time         `json:"return_time"`
	DepositAmount    Money             `json:"deposit_amount"`
	AddOns           []AddOn           `json:"add_ons,omitempty"` // Ordered; may repeat
	Insurance        *InsuranceTier    `json:"insurance,omitempty"`
	Status           ReservationStatus `json:"status"`
}

// RentalAgreement binds a vehicle to a reservation from pickup until return.
// The return fields are set exactly once, all together.
type RentalAgreement struct {
	ID            uuid.UUID    `json:"id"`
	ReservationID uuid.UUID    `json:"reservation_id"`
	Reservation   *Reservation `json:"reservation,omitempty"` // Populated when fetching agreement details
	VehicleID     uuid.UUID    `json:"vehicle_id"`
	Vehicle       *Vehicle     `json:"vehicle,omitempty"`
	PickupTime    time.Time    `json:"pickup_time"`
	StartOdometer Kilometers   `json:"start_odometer"`
	StartFuel     FuelLevel    `json:"start_fuel"`
	DueTime       time.Time    `json:"due_time"`
	ReturnTime    *time.Time   `json:"return_time,omitempty"`
	EndOdometer   *Kilometers  `json:"end_odometer,omitempty"`
	EndFuel       *FuelLevel   `json:"end_fuel,omitempty"`
}

// Returned reports whether the vehicle has come back. The three return
// fields are always set together.
func (a *RentalAgreement) Returned() bool {
	return a.ReturnTime != nil && a.EndOdometer != nil && a.EndFuel != nil
}

// RecordReturn sets the return snapshot. It may only happen once.
func (a *RentalAgreement) RecordReturn(returnTime time.Time, endOdometer Kilometers, endFuel FuelLevel) error {
	if a.Returned() {
		return ErrAlreadyReturned
	}
	a.ReturnTime = &returnTime
	a.EndOdometer = &endOdometer
	a.EndFuel = &endFuel
	return nil
}

// ExtendDueTime updates the due time for an approved extension. The deposit
// is accepted but not adjusted; extension carries no extra charge.
func (a *RentalAgreement) ExtendDueTime(newDueTime time.Time, newDeposit Money) {
	a.DueTime = newDueTime
}

// RentalDays is the billed duration in whole days: zero while the vehicle is
// out, otherwise the duration rounded up with a one-day minimum.
func (a *RentalAgreement) RentalDays() int {
	if a.ReturnTime == nil {
		return 0
	}
	seconds := a.ReturnTime.Sub(a.PickupTime).Seconds()
	if seconds <= 0 {
		return 1
	}
	return int(math.Ceil(seconds / 86400))
}

const lateGraceSeconds = 3600

// PenaltyRates holds the post-return penalty tariffs.
type PenaltyRates struct {
	DailyMileageAllowance  Kilometers
	MileageOverageFeePerKm Money
	FuelRefillCharge       Money
	LateFeePerHour         Money
}

// CalculateFinalCharges produces every charge for a returned agreement:
// the pricing-policy items followed by late, mileage and fuel penalties.
// The agreement itself is not mutated.
func (a *RentalAgreement) CalculateFinalCharges(policy *PricingPolicy, rates PenaltyRates) ([]ChargeItem, error) {
	if !a.Returned() {
		return nil, ErrNotReturned
	}

	charges := policy.CalculateTotal(a)

	// Late fee. The one-hour grace period only decides whether the fee
	// applies; once past it, the full overage is billed.
	if a.ReturnTime.After(a.DueTime) {
		lateSeconds := a.ReturnTime.Sub(a.DueTime).Seconds()
		if lateSeconds > lateGraceSeconds {
			hoursLate := int64(math.Ceil(lateSeconds / 3600))
			charges = append(charges, ChargeItem{
				Description: "Late Return Fee",
				Amount:      rates.LateFeePerHour.Mul(hoursLate),
			})
		}
	}

	// Mileage overage
	rentalDays := int64(math.Ceil(a.ReturnTime.Sub(a.PickupTime).Seconds() / 86400))
	allowanceKm := rates.DailyMileageAllowance.Value * rentalDays
	drivenKm := a.EndOdometer.Value - a.StartOdometer.Value
	if drivenKm > allowanceKm {
		charges = append(charges, ChargeItem{
			Description: "Mileage Overage Fee",
			Amount:      rates.MileageOverageFeePerKm.Mul(drivenKm - allowanceKm),
		})
	}

	// Fuel refill: flat charge whenever the tank comes back lower.
	if a.EndFuel.Value < a.StartFuel.Value {
		charges = append(charges, ChargeItem{
			Description: "Fuel Refill Charge",
			Amount:      rates.FuelRefillCharge,
		})
	}

	return charges, nil
}

// Invoice is the itemized bill for one returned rental agreement.
type Invoice struct {
	ID          uuid.UUID        `json:"id"`
	AgreementID uuid.UUID        `json:"agreement_id"`
	Agreement   *RentalAgreement `json:"agreement,omitempty"` // Populated when fetching invoice details
	ChargeItems []ChargeItem     `json:"charge_items"`
	TotalAmount Money            `json:"total_amount"`
	Status      InvoiceStatus    `json:"status"`
}

// ComputeTotal derives the total from the charge items.
func (inv *Invoice) ComputeTotal() {
	var total Money
	for _, item := range inv.ChargeItems {
		total = total.Add(item.Amount)
	}
	inv.TotalAmount = total
}

// Finalized reports whether the invoice reached a terminal status.
func (inv *Invoice) Finalized() bool {
	return inv.Status == InvoiceStatusPaid || inv.Status == InvoiceStatusFailed
}

// BillingPayment records one payment attempt against an invoice.
// Append-only; failures carry no transaction id.
type BillingPayment struct {
	ID            uuid.UUID      `json:"id"`
	InvoiceID     uuid.UUID      `json:"invoice_id"`
	AmountCharged Money          `json:"amount_charged"`
	Outcome       PaymentOutcome `json:"outcome"`
	TransactionID string         `json:"transaction_id,omitempty"`
}
