package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

type Tx interface{}

var NoTX Tx

// TransactionManager provides a thin abstraction to execute a function within
// a database transaction, passing the underlying transaction handle via `qx`.
//
// Keeping the handle opaque keeps use-case interfaces clean: repositories that
// accept `qx Tx` detect a live transaction implementation-side and run their
// statements on it, while `NoTX` (nil) selects the plain pool path.
//
// The concrete type of `qx` is infra-defined (pgx.Tx for Postgres).
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, qx Tx) error) error
}
