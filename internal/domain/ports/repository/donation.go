package repository

import (
	"context"
	"time"

	"telegram-stars-store/internal/domain/model"
)

// PendingDonationRepository is the port for staged donation intents.
type PendingDonationRepository interface {
	Insert(ctx context.Context, qx Tx, d *model.PendingDonation) error
	FindByID(ctx context.Context, qx Tx, id int64) (*model.PendingDonation, error)
	Delete(ctx context.Context, qx Tx, id int64) error
	// DeleteOlderThan reaps intents abandoned before the cutoff and returns
	// how many rows were removed.
	DeleteOlderThan(ctx context.Context, qx Tx, cutoff time.Time) (int64, error)
}
