package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	CartID string
	UserID string
	Amount decimal.Decimal
}

type PaymentReceipt struct {
	Reference string
}

// PaymentAuthorizer approves or declines a charge. Implementations return an
// error to decline.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}

// SimulatedPayments approves every charge.
type SimulatedPayments struct{}

func (SimulatedPayments) Authorize(_ context.Context, _ PaymentRequest) (*PaymentReceipt, error) {
	return &PaymentReceipt{Reference: "sim_" + uuid.NewString()}, nil
}
