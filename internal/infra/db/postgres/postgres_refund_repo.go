package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

var _ repository.RefundRepository = (*refundRepo)(nil)

type refundRepo struct{ pool *pgxpool.Pool }

func NewRefundRepo(pool *pgxpool.Pool) *refundRepo {
	return &refundRepo{pool: pool}
}

func (r *refundRepo) Append(ctx context.Context, qx repository.Tx, rec *model.RefundRecord) error {
	const q = `
INSERT INTO refunds (charge_id, admin_id, reason, date)
VALUES ($1,$2,$3,$4)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, qx, q, rec.ChargeID, rec.AdminID, rec.Reason, rec.Date)
	if err != nil {
		return err
	}
	if err := row.Scan(&rec.ID); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *refundRepo) ListRecent(ctx context.Context, qx repository.Tx, limit int) ([]*model.RefundRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT id, charge_id, admin_id, reason, date FROM refunds ORDER BY id DESC LIMIT $1;`
	rows, err := queryRows(ctx, r.pool, qx, q, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.RefundRecord
	for rows.Next() {
		rec := new(model.RefundRecord)
		if err := rows.Scan(&rec.ID, &rec.ChargeID, &rec.AdminID, &rec.Reason, &rec.Date); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, rec)
	}
	return out, nil
}
