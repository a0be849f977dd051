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

var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentCols = `id, user_id, product_id, amount, currency, charge_id, message, date, refunded`

func (r *paymentRepo) Insert(ctx context.Context, qx repository.Tx, p *model.Payment) error {
	const q = `
INSERT INTO payments (user_id, product_id, amount, currency, charge_id, message, date, refunded)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id;`
	row, err := pickRow(ctx, r.pool, qx, q, p.UserID, p.ProductID, p.Amount, p.Currency, p.ChargeID, p.Message, p.Date, p.Refunded)
	if err != nil {
		return err
	}
	if err := row.Scan(&p.ID); err != nil {
		// The unique constraint on charge_id is the idempotency key: a
		// duplicate confirmation must surface as ErrDuplicateCharge, not
		// as a generic failure.
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCharge
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentRepo) FindByChargeID(ctx context.Context, qx repository.Tx, chargeID string) (*model.Payment, error) {
	const q = `SELECT ` + paymentCols + ` FROM payments WHERE charge_id=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, qx, q, chargeID)
	if err != nil {
		return nil, err
	}
	p := &model.Payment{}
	if err := row.Scan(&p.ID, &p.UserID, &p.ProductID, &p.Amount, &p.Currency, &p.ChargeID, &p.Message, &p.Date, &p.Refunded); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *paymentRepo) MarkRefunded(ctx context.Context, qx repository.Tx, chargeID string) (bool, error) {
	const q = `UPDATE payments SET refunded=TRUE WHERE charge_id=$1;`
	ct, err := execSQL(ctx, r.pool, qx, q, chargeID)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return ct.RowsAffected() >= 1, nil
}

func (r *paymentRepo) Totals(ctx context.Context, qx repository.Tx) (int64, int64, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(amount),0) FROM payments;`
	row, err := pickRow(ctx, r.pool, qx, q)
	if err != nil {
		return 0, 0, err
	}
	var count, sum int64
	if err := row.Scan(&count, &sum); err != nil {
		return 0, 0, domain.ErrReadDatabaseRow
	}
	return count, sum, nil
}
