package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

// Ensure interface compliance
var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *productRepo {
	return &productRepo{pool: pool}
}

const productCols = `id, title, description, amount, currency, duration_days, active`

func (r *productRepo) Save(ctx context.Context, p *model.Product) error {
	if p.ID == 0 {
		const q = `
INSERT INTO products (title, description, amount, currency, duration_days, active)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id;`
		if err := r.pool.QueryRow(ctx, q, p.Title, p.Description, p.Amount, p.Currency, p.DurationDays, p.Active).Scan(&p.ID); err != nil {
			return fmt.Errorf("save product: %w", err)
		}
		return nil
	}
	const q = `
UPDATE products
   SET title=$2, description=$3, amount=$4, currency=$5, duration_days=$6, active=$7
 WHERE id=$1;`
	ct, err := r.pool.Exec(ctx, q, p.ID, p.Title, p.Description, p.Amount, p.Currency, p.DurationDays, p.Active)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, qx repository.Tx, id int64) (*model.Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE id=$1;`
	return r.queryOne(ctx, qx, q, id)
}

func (r *productRepo) FindActiveByID(ctx context.Context, qx repository.Tx, id int64) (*model.Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE id=$1 AND active;`
	return r.queryOne(ctx, qx, q, id)
}

func (r *productRepo) ListActive(ctx context.Context, limit int) ([]*model.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT ` + productCols + ` FROM products WHERE active ORDER BY id ASC LIMIT $1;`
	return r.queryMany(ctx, q, limit)
}

func (r *productRepo) ListAll(ctx context.Context) ([]*model.Product, error) {
	q := `SELECT ` + productCols + ` FROM products ORDER BY id DESC;`
	return r.queryMany(ctx, q)
}

func (r *productRepo) SetActive(ctx context.Context, id int64, active bool) error {
	const q = `UPDATE products SET active=$2 WHERE id=$1;`
	ct, err := r.pool.Exec(ctx, q, id, active)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM products WHERE id=$1;`
	ct, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) queryOne(ctx context.Context, qx repository.Tx, q string, args ...interface{}) (*model.Product, error) {
	row, err := pickRow(ctx, r.pool, qx, q, args...)
	if err != nil {
		return nil, err
	}
	p := &model.Product{}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Amount, &p.Currency, &p.DurationDays, &p.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

func (r *productRepo) queryMany(ctx context.Context, q string, args ...interface{}) ([]*model.Product, error) {
	rows, err := queryRows(ctx, r.pool, nil, q, args...)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Product
	for rows.Next() {
		p := new(model.Product)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Amount, &p.Currency, &p.DurationDays, &p.Active); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	return out, nil
}
