package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
	"carfleet-backend/internal/repository"
)

type accountingService struct {
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.BillingPaymentRepository
	gateway      PaymentGateway
	notifier     Notifier
}

func NewAccountingService(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.BillingPaymentRepository,
	gateway PaymentGateway,
	notifier Notifier,
) AccountingService {
	return &accountingService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		gateway:      gateway,
		notifier:     notifier,
	}
}

// CaptureDeposit pre-authorizes a hold on the customer's card. A gateway
// failure propagates to the caller; nothing is persisted either way.
func (s *accountingService) CaptureDeposit(ctx context.Context, customerID uuid.UUID, amount domain.Money) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	if _, err := s.gateway.AuthorizeDeposit(ctx, customer, amount); err != nil {
		logger.Error("Deposit authorization failed", "customer_email", customer.Email, "error", err)
		return fmt.Errorf("failed to authorize deposit: %w", err)
	}

	logger.Info("Deposit authorized", "customer_id", customerID, "amount_cents", amount.Cents)
	return nil
}

// FinalizePayment charges the invoice total. The gateway outcome is absorbed
// into state: the invoice moves to PAID or FAILED, a billing payment record
// is written either way, and the customer is notified. Only the notification
// text and the transaction id differ between the two paths.
func (s *accountingService) FinalizePayment(ctx context.Context, invoiceID uuid.UUID) (*domain.BillingPayment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Finalized() {
		return nil, domain.ErrInvoiceFinalized
	}

	customer := invoice.Agreement.Reservation.Customer
	amount := invoice.TotalAmount

	payment := &domain.BillingPayment{
		ID:            uuid.New(),
		InvoiceID:     invoice.ID,
		AmountCharged: amount,
	}

	var message string
	txID, err := s.gateway.FinalizePayment(ctx, customer, amount)
	if err != nil {
		invoice.Status = domain.InvoiceStatusFailed
		payment.Outcome = domain.PaymentOutcomeFailure
		message = fmt.Sprintf("Payment failed for invoice %s. Please update your billing.", invoice.ID)
		logger.Warn("Payment finalization failed", "invoice_id", invoice.ID, "error", err)
	} else {
		invoice.Status = domain.InvoiceStatusPaid
		payment.Outcome = domain.PaymentOutcomeSuccess
		payment.TransactionID = txID
		message = fmt.Sprintf("Your payment for invoice %s was successful.", invoice.ID)
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record billing payment: %w", err)
	}

	if err := s.notifier.Send(ctx, customer, message); err != nil {
		logger.Warn("Failed to send payment notification", "customer_email", customer.Email, "error", err)
	}

	logger.Info("Payment finalized", "invoice_id", invoice.ID, "outcome", payment.Outcome)
	return payment, nil
}
