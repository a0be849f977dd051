package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

var _ repository.PendingDonationRepository = (*donationRepo)(nil)

type donationRepo struct{ pool *pgxpool.Pool }

func NewPendingDonationRepo(pool *pgxpool.Pool) *donationRepo {
	return &donationRepo{pool: pool}
}

func (r *donationRepo) Insert(ctx context.Context, qx repository.Tx, d *model.PendingDonation) error {
	const q = `
INSERT INTO pending_donations (user_id, amount, message, created_at)
VALUES ($1,$2,$3,$4)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, qx, q, d.UserID, d.Amount, d.Message, d.CreatedAt)
	if err != nil {
		return err
	}
	if err := row.Scan(&d.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *donationRepo) FindByID(ctx context.Context, qx repository.Tx, id int64) (*model.PendingDonation, error) {
	const q = `SELECT id, user_id, amount, message, created_at FROM pending_donations WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, qx, q, id)
	if err != nil {
		return nil, err
	}
	d := &model.PendingDonation{}
	if err := row.Scan(&d.ID, &d.UserID, &d.Amount, &d.Message, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return d, nil
}

func (r *donationRepo) Delete(ctx context.Context, qx repository.Tx, id int64) error {
	const q = `DELETE FROM pending_donations WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, qx, q, id); err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *donationRepo) DeleteOlderThan(ctx context.Context, qx repository.Tx, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM pending_donations WHERE created_at < $1;`
	ct, err := execSQL(ctx, r.pool, qx, q, cutoff)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return 0, err
		}
		return 0, domain.ErrOperationFailed
	}
	return ct.RowsAffected(), nil
}
