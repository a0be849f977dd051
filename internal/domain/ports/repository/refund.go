package repository

import (
	"context"

	"telegram-stars-store/internal/domain/model"
)

// RefundRepository is the port for the append-only refund journal.
type RefundRepository interface {
	Append(ctx context.Context, qx Tx, r *model.RefundRecord) error
	ListRecent(ctx context.Context, qx Tx, limit int) ([]*model.RefundRecord, error)
}
