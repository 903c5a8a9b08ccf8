package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
	catalogRepo     repository.CatalogRepository
	locationRepo    repository.LocationRepository
	notifier        Notifier
	clock           clock.Clock
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
	catalogRepo repository.CatalogRepository,
	locationRepo repository.LocationRepository,
	notifier Notifier,
	clk clock.Clock,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		catalogRepo:     catalogRepo,
		locationRepo:    locationRepo,
		notifier:        notifier,
		clock:           clk,
	}
}

// CreateReservation books a vehicle class for a time window. The
// reservation is CONFIRMED immediately; availability is only enforced at
// pickup, not here.
func (s *reservationService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*domain.Reservation, error) {
	if !req.PickupTime.Before(req.ReturnTime) {
		return nil, domain.ErrInvalidTimeWindow
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	class, err := s.catalogRepo.GetVehicleClass(ctx, req.VehicleClassID)
	if err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, req.PickupLocationID); err != nil {
		return nil, err
	}
	if _, err := s.locationRepo.GetByID(ctx, req.ReturnLocationID); err != nil {
		return nil, err
	}

	addOns := make([]domain.AddOn, 0, len(req.AddOnIDs))
	for _, addOnID := range req.AddOnIDs {
		addOn, err := s.catalogRepo.GetAddOn(ctx, addOnID)
		if err != nil {
			return nil, err
		}
		addOns = append(addOns, *addOn)
	}

	var insurance *domain.InsuranceTier
	if req.InsuranceTierID != nil {
		insurance, err = s.catalogRepo.GetInsuranceTier(ctx, *req.InsuranceTierID)
		if err != nil {
			return nil, err
		}
	}

	reservation := &domain.Reservation{
		ID:               uuid.New(),
		CustomerID:       customer.ID,
		Customer:         customer,
		VehicleClassID:   class.ID,
		VehicleClass:     class,
		PickupLocationID: req.PickupLocationID,
		ReturnLocationID: req.ReturnLocationID,
		PickupTime:       req.PickupTime,
		ReturnTime:       req.ReturnTime,
		DepositAmount:    req.DepositAmount,
		AddOns:           addOns,
		Insurance:        insurance,
		Status:           domain.ReservationStatusConfirmed,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	logger.Info("Reservation created", "reservation_id", reservation.ID, "customer_id", customer.ID, "vehicle_class", class.Name)

	if err := s.notifier.Send(ctx, customer, fmt.Sprintf("Your reservation %s is confirmed.", reservation.ID)); err != nil {
		logger.Warn("Failed to send reservation confirmation", "reservation_id", reservation.ID, "error", err)
	}

	return reservation, nil
}

// CancelReservation marks a reservation CANCELLED and notifies the customer.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	reservation.Status = domain.ReservationStatusCancelled
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	logger.Info("Reservation cancelled", "reservation_id", reservation.ID)

	if err := s.notifier.Send(ctx, reservation.Customer, fmt.Sprintf("Your reservation %s has been cancelled.", reservation.ID)); err != nil {
		logger.Warn("Failed to send cancellation notice", "reservation_id", reservation.ID, "error", err)
	}

	return reservation, nil
}
