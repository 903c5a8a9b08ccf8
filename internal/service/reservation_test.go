package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carfleet-backend/internal/clock"
	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/notify"
	"carfleet-backend/internal/repository/memory"
)

type reservationFixture struct {
	store    *memory.Store
	notifier *notify.InMemoryNotifier
	svc      ReservationService
	customer *domain.Customer
	class    *domain.VehicleClass
	location *domain.Location
	gps      *domain.AddOn
	seat     *domain.AddOn
	cover    *domain.InsuranceTier
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	notifier := notify.NewInMemoryNotifier()
	clk := clock.NewFixedClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	customer := &domain.Customer{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, store.CustomerRepository.Create(ctx, customer))

	location := &domain.Location{ID: uuid.New(), Name: "Downtown", Address: "1 Main St"}
	require.NoError(t, store.LocationRepository.Create(ctx, location))

	class := &domain.VehicleClass{ID: uuid.New(), Name: "Compact", BaseRate: domain.NewMoney(5000)}
	require.NoError(t, store.CatalogRepository.CreateVehicleClass(ctx, class))

	gps := &domain.AddOn{ID: uuid.New(), Name: "GPS", DailyRate: domain.NewMoney(1000)}
	require.NoError(t, store.CatalogRepository.CreateAddOn(ctx, gps))
	seat := &domain.AddOn{ID: uuid.New(), Name: "Baby Seat", DailyRate: domain.NewMoney(500)}
	require.NoError(t, store.CatalogRepository.CreateAddOn(ctx, seat))

	cover := &domain.InsuranceTier{ID: uuid.New(), Name: "Full Cover", DailyRate: domain.NewMoney(3000)}
	require.NoError(t, store.CatalogRepository.CreateInsuranceTier(ctx, cover))

	svc := NewReservationService(
		store.ReservationRepository,
		store.CustomerRepository,
		store.CatalogRepository,
		store.LocationRepository,
		notifier,
		clk,
	)

	return &reservationFixture{
		store:    store,
		notifier: notifier,
		svc:      svc,
		customer: customer,
		class:    class,
		location: location,
		gps:      gps,
		seat:     seat,
		cover:    cover,
	}
}

func (f *reservationFixture) baseRequest() *CreateReservationRequest {
	pickup := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &CreateReservationRequest{
		CustomerID:       f.customer.ID,
		VehicleClassID:   f.class.ID,
		PickupLocationID: f.location.ID,
		ReturnLocationID: f.location.ID,
		PickupTime:       pickup,
		ReturnTime:       pickup.Add(48 * time.Hour),
		DepositAmount:    domain.NewMoney(30000),
	}
}

func TestCreateReservation(t *testing.T) {
	f := newReservationFixture(t)
	req := f.baseRequest()
	req.AddOnIDs = []uuid.UUID{f.seat.ID, f.gps.ID, f.seat.ID}
	req.InsuranceTierID = &f.cover.ID

	reservation, err := f.svc.CreateReservation(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.ReservationStatusConfirmed, reservation.Status)
	assert.Equal(t, f.customer.ID, reservation.CustomerID)
	assert.Equal(t, int64(30000), reservation.DepositAmount.Cents)

	// Add-on selection keeps order and duplicates
	require.Len(t, reservation.AddOns, 3)
	assert.Equal(t, "Baby Seat", reservation.AddOns[0].Name)
	assert.Equal(t, "GPS", reservation.AddOns[1].Name)
	assert.Equal(t, "Baby Seat", reservation.AddOns[2].Name)

	require.NotNil(t, reservation.Insurance)
	assert.Equal(t, "Full Cover", reservation.Insurance.Name)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, f.customer.Email, sent[0].Email)
	assert.Contains(t, sent[0].Message, "confirmed")
}

func TestCreateReservationInvalidWindow(t *testing.T) {
	f := newReservationFixture(t)

	req := f.baseRequest()
	req.ReturnTime = req.PickupTime
	_, err := f.svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeWindow)

	req = f.baseRequest()
	req.ReturnTime = req.PickupTime.Add(-time.Hour)
	_, err = f.svc.CreateReservation(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeWindow)
}

func TestCreateReservationUnknownReferences(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	req := f.baseRequest()
	req.CustomerID = uuid.New()
	_, err := f.svc.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	req = f.baseRequest()
	req.VehicleClassID = uuid.New()
	_, err = f.svc.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, domain.ErrVehicleClassNotFound)

	req = f.baseRequest()
	req.AddOnIDs = []uuid.UUID{uuid.New()}
	_, err = f.svc.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, domain.ErrAddOnNotFound)

	req = f.baseRequest()
	unknown := uuid.New()
	req.InsuranceTierID = &unknown
	_, err = f.svc.CreateReservation(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInsuranceNotFound)
}

func TestCancelReservation(t *testing.T) {
	f := newReservationFixture(t)
	ctx := context.Background()

	reservation, err := f.svc.CreateReservation(ctx, f.baseRequest())
	require.NoError(t, err)
	f.notifier.Clear()

	cancelled, err := f.svc.CancelReservation(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCancelled, cancelled.Status)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Message, "cancelled")
}

func TestCancelReservationUnknown(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.svc.CancelReservation(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}
