package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

func (r *subscriptionRepo) Insert(ctx context.Context, qx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (user_id, product_id, start_date, expiry_date)
VALUES ($1,$2,$3,$4)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, qx, q, s.UserID, s.ProductID, s.StartDate, s.ExpiryDate)
	if err != nil {
		return err
	}
	if err := row.Scan(&s.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) FindLatestByUser(ctx context.Context, qx repository.Tx, userID int64) (*model.Subscription, error) {
	const q = `
SELECT id, user_id, product_id, start_date, expiry_date
  FROM subscriptions
 WHERE user_id=$1
 ORDER BY id DESC
 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, qx, q, userID)
	if err != nil {
		return nil, err
	}
	s := &model.Subscription{}
	if err := row.Scan(&s.ID, &s.UserID, &s.ProductID, &s.StartDate, &s.ExpiryDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *subscriptionRepo) CountActive(ctx context.Context, qx repository.Tx) (int64, error) {
	const q = `SELECT COUNT(*) FROM subscriptions WHERE expiry_date > NOW();`
	row, err := pickRow(ctx, r.pool, qx, q)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
