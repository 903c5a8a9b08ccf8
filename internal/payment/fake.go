package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"carfleet-backend/internal/domain"
	"carfleet-backend/internal/logger"
)

// ErrDeclined is what the fake gateway returns when configured to fail.
var ErrDeclined = errors.New("payment declined")

// FakeGateway is a deterministic implementation of the payment port. There
// is no real gateway protocol behind it; ShouldSucceed flips it between
// approving and declining every call.
type FakeGateway struct {
	ShouldSucceed bool
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{ShouldSucceed: true}
}

func (g *FakeGateway) AuthorizeDeposit(ctx context.Context, customer *domain.Customer, amount domain.Money) (string, error) {
	logger.ExternalServiceCall("payment", "AuthorizeDeposit", "customer", customer.Email, "amount_cents", amount.Cents)
	if !g.ShouldSucceed {
		logger.ExternalServiceResult("payment", "AuthorizeDeposit", ErrDeclined)
		return "", fmt.Errorf("authorize deposit: %w", ErrDeclined)
	}
	txID := "auth_" + shortID()
	logger.ExternalServiceResult("payment", "AuthorizeDeposit", nil, "transaction_id", txID)
	return txID, nil
}

func (g *FakeGateway) FinalizePayment(ctx context.Context, customer *domain.Customer, amount domain.Money) (string, error) {
	logger.ExternalServiceCall("payment", "FinalizePayment", "customer", customer.Email, "amount_cents", amount.Cents)
	if !g.ShouldSucceed {
		logger.ExternalServiceResult("payment", "FinalizePayment", ErrDeclined)
		return "", fmt.Errorf("finalize payment: %w", ErrDeclined)
	}
	txID := "charge_" + shortID()
	logger.ExternalServiceResult("payment", "FinalizePayment", nil, "transaction_id", txID)
	return txID, nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}
