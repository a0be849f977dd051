package repository

import (
	"context"

	"telegram-stars-store/internal/domain/model"
)

// SubscriptionRepository is the port for user entitlements. Rows are only
// ever written by the payment confirmation flow.
type SubscriptionRepository interface {
	Insert(ctx context.Context, qx Tx, s *model.Subscription) error
	// FindLatestByUser returns the most recently created row for the user,
	// or domain.ErrNotFound.
	FindLatestByUser(ctx context.Context, qx Tx, userID int64) (*model.Subscription, error)
	CountActive(ctx context.Context, qx Tx) (int64, error)
}
