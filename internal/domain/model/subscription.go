package model

import (
	"time"

	"telegram-stars-store/internal/domain"
)

// Subscription is a time-boxed entitlement created when a confirmed charge
// references a product with a nonzero duration. A user may accumulate many
// rows; the most recently created one decides current status.
type Subscription struct {
	ID         int64
	UserID     int64
	ProductID  int64
	StartDate  time.Time
	ExpiryDate time.Time
}

// NewSubscription computes the expiry from the product duration.
func NewSubscription(userID int64, product *Product, start time.Time) (*Subscription, error) {
	if userID == 0 || product.IsZero() || product.DurationDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscription{
		UserID:     userID,
		ProductID:  product.ID,
		StartDate:  start,
		ExpiryDate: start.Add(time.Duration(product.DurationDays) * 24 * time.Hour),
	}, nil
}

// ActiveAt reports whether the subscription is still running at t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	return s != nil && s.ExpiryDate.After(t)
}

// RemainingDays returns the number of whole days left at t, zero if expired.
func (s *Subscription) RemainingDays(t time.Time) int {
	if !s.ActiveAt(t) {
		return 0
	}
	return int(s.ExpiryDate.Sub(t).Hours() / 24)
}
