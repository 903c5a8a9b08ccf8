package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/repository"
)

type rentalService struct {
	reservationRepo repository.ReservationRepository
	vehicleRepo     repository.VehicleRepository
	agreementRepo   repository.AgreementRepository
	invoiceRepo     repository.InvoiceRepository
	pricingPolicy   *domain.PricingPolicy
	penaltyRates    domain.PenaltyRates
	clock           clock.Clock
}

func NewRentalService(
	reservationRepo repository.ReservationRepository,
	vehicleRepo repository.VehicleRepository,
	agreementRepo repository.AgreementRepository,
	invoiceRepo repository.InvoiceRepository,
	pricingPolicy *domain.PricingPolicy,
	penaltyRates domain.PenaltyRates,
	clk clock.Clock,
) RentalService {
	return &rentalService{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		agreementRepo:   agreementRepo,
		invoiceRepo:     invoiceRepo,
		pricingPolicy:   pricingPolicy,
		penaltyRates:    penaltyRates,
		clock:           clk,
	}
}

// PickupVehicle binds a vehicle to a reservation and opens a rental
// agreement. The pickup token doubles as the agreement id, which makes a
// retried call a lookup instead of a second pickup.
func (s *rentalService) PickupVehicle(ctx context.Context, reservationID, vehicleID uuid.UUID, pickupToken string) (*domain.RentalAgreement, error) {
	agreementID, err := uuid.Parse(pickupToken)
	if err != nil {
		return nil, domain.ErrInvalidPickupToken
	}

	if existing, err := s.agreementRepo.GetByID(ctx, agreementID); err == nil {
		logger.Info("Pickup replayed, returning existing agreement", "agreement_id", agreementID)
		return existing, nil
	} else if !errors.Is(err, domain.ErrAgreementNotFound) {
		return nil, err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	// All checks precede any mutation.
	if vehicle.VehicleClassID != reservation.VehicleClassID {
		return nil, domain.ErrVehicleClassMismatch
	}
	now := s.clock.Now()
	if !vehicle.CanBeAssigned(now) {
		return nil, domain.ErrVehicleNotAssignable
	}

	agreement := &domain.RentalAgreement{
		ID:            agreementID,
		ReservationID: reservation.ID,
		Reservation:   reservation,
		VehicleID:     vehicle.ID,
		Vehicle:       vehicle,
		PickupTime:    now,
		StartOdometer: vehicle.Odometer,
		StartFuel:     vehicle.FuelLevel,
		DueTime:       reservation.ReturnTime,
	}

	vehicle.State = domain.VehicleStateRented
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	if err := s.agreementRepo.Create(ctx, agreement); err != nil {
		return nil, fmt.Errorf("failed to create rental agreement: %w", err)
	}

	logger.Info("Vehicle picked up", "agreement_id", agreement.ID, "reservation_id", reservation.ID, "vehicle_id", vehicle.ID)
	return agreement, nil
}

// ReturnVehicle closes out a rental: it records the return snapshot,
// computes the final charges and produces a PENDING invoice. A second call
// for the same agreement returns the invoice already created.
func (s *rentalService) ReturnVehicle(ctx context.Context, agreementID uuid.UUID, endOdometer domain.Kilometers, endFuel domain.FuelLevel) (*domain.Invoice, error) {
	if existing, err := s.invoiceRepo.GetByAgreementID(ctx, agreementID); err == nil {
		logger.Info("Return replayed, returning existing invoice", "agreement_id", agreementID, "invoice_id", existing.ID)
		return existing, nil
	} else if !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, err
	}

	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	if err := agreement.RecordReturn(s.clock.Now(), endOdometer, endFuel); err != nil {
		return nil, err
	}

	charges, err := agreement.CalculateFinalCharges(s.pricingPolicy, s.penaltyRates)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		ID:          uuid.New(),
		AgreementID: agreement.ID,
		Agreement:   agreement,
		ChargeItems: charges,
		Status:      domain.InvoiceStatusPending,
	}
	invoice.ComputeTotal()

	if err := s.agreementRepo.Update(ctx, agreement); err != nil {
		return nil, fmt.Errorf("failed to update agreement: %w", err)
	}

	vehicle := agreement.Vehicle
	vehicle.Odometer = endOdometer
	vehicle.FuelLevel = endFuel
	vehicle.State = domain.VehicleStateCleaning
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	logger.Info("Vehicle returned", "agreement_id", agreement.ID, "invoice_id", invoice.ID, "total_cents", invoice.TotalAmount.Cents)
	return invoice, nil
}

// ExtendRental moves the agreement's due time forward unless a reservation
// overlaps the extension interval (its pickup before the new due time and
// its return after the current due time).
func (s *rentalService) ExtendRental(ctx context.Context, agreementID uuid.UUID, newDueTime time.Time) error {
	agreement, err := s.agreementRepo.GetByID(ctx, agreementID)
	if err != nil {
		return err
	}

	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return err
	}
	for i := range reservations {
		res := &reservations[i]
		if res.PickupTime.Before(newDueTime) && res.ReturnTime.After(agreement.DueTime) {
			logger.Info("Extension refused", "agreement_id", agreementID, "conflicting_reservation", res.ID)
			return domain.ErrExtensionConflict
		}
	}

	// Deposit adjustment on extension is a no-op for now.
	agreement.ExtendDueTime(newDueTime, domain.Money{})
	if err := s.agreementRepo.Update(ctx, agreement); err != nil {
		return fmt.Errorf("failed to extend agreement: %w", err)
	}

	logger.Info("Rental extended", "agreement_id", agreementID, "new_due_time", newDueTime)
	return nil
}
