// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"

	"telegram-stars-store/internal/domain/ports/repository"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// Stats is a point-in-time snapshot for the admin surfaces.
type Stats struct {
	PaymentCount        int64
	RevenueTotal        int64
	ActiveSubscriptions int64
}

type StatsUseCase interface {
	Snapshot(ctx context.Context) (*Stats, error)
}

type statsUC struct {
	payments repository.PaymentRepository
	subs     repository.SubscriptionRepository
}

func NewStatsUseCase(payments repository.PaymentRepository, subs repository.SubscriptionRepository) *statsUC {
	return &statsUC{payments: payments, subs: subs}
}

func (u *statsUC) Snapshot(ctx context.Context) (*Stats, error) {
	count, sum, err := u.payments.Totals(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	active, err := u.subs.CountActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	return &Stats{PaymentCount: count, RevenueTotal: sum, ActiveSubscriptions: active}, nil
}
