package repository

import (
	"context"

	"telegram-stars-store/internal/domain/model"
)

// PaymentRepository is the port for the durable payment ledger.
type PaymentRepository interface {
	// Insert stores a new payment and fills in its generated ID. It returns
	// domain.ErrDuplicateCharge when a row with the same charge id already
	// exists; callers rely on that for exactly-once materialization.
	Insert(ctx context.Context, qx Tx, p *model.Payment) error
	FindByChargeID(ctx context.Context, qx Tx, chargeID string) (*model.Payment, error)
	// MarkRefunded flips the refunded flag; reports whether a row matched.
	MarkRefunded(ctx context.Context, qx Tx, chargeID string) (bool, error)
	// Totals returns the count and sum of all recorded payments.
	Totals(ctx context.Context, qx Tx) (count int64, sum int64, err error)
}
