package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carfleet-backend/internal/domain"
)

// expectAgreementHydration queues the query chain a loaded invoice triggers:
// agreement, reservation, customer, vehicle class, add-ons, vehicle,
// vehicle class again, maintenance records.
func expectAgreementHydration(mock sqlmock.Sqlmock, agreementID, customerID uuid.UUID) {
	reservationID := uuid.New()
	vehicleID := uuid.New()
	classID := uuid.New()
	locationID := uuid.New()
	pickup := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM rental_agreements WHERE id").
		WithArgs(agreementID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "vehicle_id", "pickup_time", "start_odometer_km", "start_fuel", "due_time", "return_time", "end_odometer_km", "end_fuel"}).
			AddRow(agreementID, reservationID, vehicleID, pickup, int64(10000), 1.0, pickup.Add(24*time.Hour), nil, nil, nil))
	mock.ExpectQuery("FROM reservations WHERE id").
		WithArgs(reservationID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "vehicle_class_id", "pickup_location_id", "return_location_id", "pickup_time", "return_time", "deposit_cents", "insurance_tier_id", "status"}).
			AddRow(reservationID, customerID, classID, locationID, locationID, pickup, pickup.Add(24*time.Hour), int64(20000), nil, domain.ReservationStatusConfirmed))
	mock.ExpectQuery("FROM customers WHERE id").
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(customerID, "Avery", "Brooks", "avery@example.com"))
	mock.ExpectQuery("FROM vehicle_classes WHERE id").
		WithArgs(classID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_rate_cents"}).
			AddRow(classID, "Compact", int64(5000)))
	mock.ExpectQuery("FROM reservation_add_ons").
		WithArgs(reservationID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "daily_rate_cents"}))
	mock.ExpectQuery("FROM vehicles WHERE id").
		WithArgs(vehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "license_plate", "odometer_km", "fuel_level", "vehicle_class_id", "location_id", "state"}).
			AddRow(vehicleID, "CF-100", int64(10000), 1.0, classID, locationID, domain.VehicleStateRented))
	mock.ExpectQuery("FROM vehicle_classes WHERE id").
		WithArgs(classID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_rate_cents"}).
			AddRow(classID, "Compact", int64(5000)))
	mock.ExpectQuery("FROM maintenance_records WHERE vehicle_id").
		WithArgs(vehicleID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "service_type", "odometer_threshold_km", "time_threshold_seconds", "last_service_date", "last_service_odometer_km"}))
}

func TestInvoiceRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inv := &domain.Invoice{
		ID:          uuid.New(),
		AgreementID: uuid.New(),
		ChargeItems: []domain.ChargeItem{
			{Description: "Base Rate: Compact", Amount: domain.NewMoney(10000)},
			{Description: "Fuel Refill Charge", Amount: domain.NewMoney(7500)},
		},
		Status: domain.InvoiceStatusPending,
	}
	inv.ComputeTotal()
	items, err := json.Marshal(inv.ChargeItems)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(inv.ID, inv.AgreementID, items, int64(17500), inv.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewInvoiceRepository(db)
	require.NoError(t, repo.Create(context.Background(), inv))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepositoryGetByAgreementID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	invoiceID := uuid.New()
	agreementID := uuid.New()
	customerID := uuid.New()
	items, err := json.Marshal([]domain.ChargeItem{
		{Description: "Base Rate: Compact", Amount: domain.NewMoney(10000)},
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "agreement_id", "charge_items", "total_cents", "status"}).
		AddRow(invoiceID, agreementID, items, int64(10000), domain.InvoiceStatusPending)
	mock.ExpectQuery("SELECT id, agreement_id, charge_items, total_cents, status FROM invoices WHERE agreement_id").
		WithArgs(agreementID).
		WillReturnRows(rows)
	expectAgreementHydration(mock, agreementID, customerID)

	repo := NewInvoiceRepository(db)
	inv, err := repo.GetByAgreementID(context.Background(), agreementID)
	require.NoError(t, err)

	assert.Equal(t, invoiceID, inv.ID)
	assert.Equal(t, int64(10000), inv.TotalAmount.Cents)
	require.Len(t, inv.ChargeItems, 1)
	assert.Equal(t, "Base Rate: Compact", inv.ChargeItems[0].Description)

	// Payment finalization walks invoice -> agreement -> reservation ->
	// customer, so the whole chain must come back populated.
	require.NotNil(t, inv.Agreement)
	require.NotNil(t, inv.Agreement.Reservation)
	require.NotNil(t, inv.Agreement.Reservation.Customer)
	assert.Equal(t, customerID, inv.Agreement.Reservation.Customer.ID)
	assert.Equal(t, "avery@example.com", inv.Agreement.Reservation.Customer.Email)
	require.NotNil(t, inv.Agreement.Vehicle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepositoryGetByAgreementIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	agreementID := uuid.New()
	mock.ExpectQuery("SELECT id, agreement_id, charge_items, total_cents, status FROM invoices WHERE agreement_id").
		WithArgs(agreementID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "agreement_id", "charge_items", "total_cents", "status"}))

	repo := NewInvoiceRepository(db)
	_, err = repo.GetByAgreementID(context.Background(), agreementID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepositoryUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	inv := &domain.Invoice{ID: uuid.New(), Status: domain.InvoiceStatusPaid}
	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs(inv.Status, inv.ID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewInvoiceRepository(db)
	err = repo.Update(context.Background(), inv)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingPaymentRepositoryCreateNoTransactionID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	p := &domain.BillingPayment{
		ID:            uuid.New(),
		InvoiceID:     uuid.New(),
		AmountCharged: domain.NewMoney(17500),
		Outcome:       domain.PaymentOutcomeFailure,
	}

	// A failed attempt stores a NULL transaction id
	mock.ExpectExec("INSERT INTO billing_payments").
		WithArgs(p.ID, p.InvoiceID, int64(17500), p.Outcome, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBillingPaymentRepository(db)
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NoError(t, mock.ExpectationsWereMet())
}
