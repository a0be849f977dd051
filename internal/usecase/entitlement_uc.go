// File: internal/usecase/entitlement_uc.go
package usecase

import (
	"context"
	"time"

	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

// Compile-time check
var _ EntitlementUseCase = (*entitlementUC)(nil)

// EntitlementStatus is the user-facing view of the latest grant. The most
// recent subscription row is authoritative even when it has expired.
type EntitlementStatus struct {
	Subscription  *model.Subscription
	Active        bool
	RemainingDays int
}

type EntitlementUseCase interface {
	// Current returns the latest entitlement status for the user, or
	// domain.ErrNotFound when none was ever granted.
	Current(ctx context.Context, userID int64) (*EntitlementStatus, error)
}

type entitlementUC struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

func NewEntitlementUseCase(subs repository.SubscriptionRepository) *entitlementUC {
	return &entitlementUC{subs: subs, now: time.Now}
}

func (u *entitlementUC) Current(ctx context.Context, userID int64) (*EntitlementStatus, error) {
	sub, err := u.subs.FindLatestByUser(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	return &EntitlementStatus{
		Subscription:  sub,
		Active:        sub.ActiveAt(now),
		RemainingDays: sub.RemainingDays(now),
	}, nil
}
