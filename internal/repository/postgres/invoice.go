package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/repository"
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	items, err := json.Marshal(inv.ChargeItems)
	if err != nil {
		return err
	}
	query := `INSERT INTO invoices (id, agreement_id, charge_items, total_cents, status) VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query, inv.ID, inv.AgreementID, items, inv.TotalAmount.Cents, inv.Status)
	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT id, agreement_id, charge_items, total_cents, status FROM invoices WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *invoiceRepository) GetByAgreementID(ctx context.Context, agreementID uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT id, agreement_id, charge_items, total_cents, status FROM invoices WHERE agreement_id = $1`
	return r.get(ctx, query, agreementID)
}

func (r *invoiceRepository) get(ctx context.Context, query string, arg interface{}) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	var items []byte
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&inv.ID, &inv.AgreementID, &items, &inv.TotalAmount.Cents, &inv.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.ChargeItems); err != nil {
		return nil, err
	}
	agreement, err := getAgreement(ctx, r.db, inv.AgreementID)
	if err != nil {
		return nil, err
	}
	inv.Agreement = agreement
	return inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	query := `UPDATE invoices SET status=$1 WHERE id=$2`
	result, err := r.db.ExecContext(ctx, query, inv.Status, inv.ID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

type billingPaymentRepository struct {
	db *sql.DB
}

func NewBillingPaymentRepository(db *sql.DB) repository.BillingPaymentRepository {
	return &billingPaymentRepository{db: db}
}

func (r *billingPaymentRepository) Create(ctx context.Context, p *domain.BillingPayment) error {
	var txID sql.NullString
	if p.TransactionID != "" {
		txID = sql.NullString{String: p.TransactionID, Valid: true}
	}
	query := `INSERT INTO billing_payments (id, invoice_id, amount_cents, outcome, transaction_id) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.InvoiceID, p.AmountCharged.Cents, p.Outcome, txID)
	return err
}

func (r *billingPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.BillingPayment, error) {
	query := `SELECT id, invoice_id, amount_cents, outcome, transaction_id FROM billing_payments WHERE invoice_id = $1 ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.BillingPayment
	for rows.Next() {
		var p domain.BillingPayment
		var txID sql.NullString
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.AmountCharged.Cents, &p.Outcome, &txID); err != nil {
			return nil, err
		}
		p.TransactionID = txID.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
