package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EnsureSchema creates the five tables on startup when they do not exist yet.
// charge_id carries the UNIQUE constraint that serializes duplicate delivery
// of the same confirmation event.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    amount        BIGINT NOT NULL,
    currency      TEXT NOT NULL,
    duration_days INT NOT NULL DEFAULT 0,
    active        BOOLEAN NOT NULL DEFAULT TRUE
);`,
		`CREATE TABLE IF NOT EXISTS payments (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL,
    product_id BIGINT,
    amount     BIGINT NOT NULL,
    currency   TEXT NOT NULL,
    charge_id  TEXT NOT NULL UNIQUE,
    message    TEXT,
    date       TIMESTAMPTZ NOT NULL,
    refunded   BOOLEAN NOT NULL DEFAULT FALSE
);`,
		`CREATE TABLE IF NOT EXISTS subscriptions (
    id          BIGSERIAL PRIMARY KEY,
    user_id     BIGINT NOT NULL,
    product_id  BIGINT NOT NULL,
    start_date  TIMESTAMPTZ NOT NULL,
    expiry_date TIMESTAMPTZ NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS refunds (
    id        BIGSERIAL PRIMARY KEY,
    charge_id TEXT NOT NULL,
    admin_id  BIGINT NOT NULL,
    reason    TEXT NOT NULL,
    date      TIMESTAMPTZ NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS pending_donations (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL,
    amount     BIGINT NOT NULL,
    message    TEXT,
    created_at TIMESTAMPTZ NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_user ON subscriptions (user_id, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_pending_donations_created ON pending_donations (created_at);`,
	}
	for _, s := range stmts {
		if _, err := pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
