package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAmountOutOfRange   = errors.New("donation amount out of range")
	ErrDuplicateCharge    = errors.New("charge already recorded")
	ErrInvalidExecContext = errors.New("invalid transaction executor")
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
