package model

import (
	"errors"
	"testing"
	"time"

	"telegram-stars-store/internal/domain"
)

func TestNewSubscription(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &Product{ID: 1, Title: "Premium", Amount: 100, Currency: "XTR", DurationDays: 30, Active: true}

	sub, err := NewSubscription(42, p, start)
	if err != nil {
		t.Fatalf("NewSubscription: %v", err)
	}
	if want := start.Add(30 * 24 * time.Hour); !sub.ExpiryDate.Equal(want) {
		t.Fatalf("expiry = %v, want %v", sub.ExpiryDate, want)
	}

	if _, err := NewSubscription(0, p, start); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero user: err = %v", err)
	}
	noDuration := &Product{ID: 2, Title: "Pack", Amount: 5, Currency: "XTR", Active: true}
	if _, err := NewSubscription(42, noDuration, start); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero duration: err = %v", err)
	}
}

func TestSubscriptionRemainingDays(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		active bool
		days   int
	}{
		{"expired yesterday", now.Add(-24 * time.Hour), false, 0},
		{"expires this second", now, false, 0},
		{"half a day left", now.Add(12 * time.Hour), true, 0},
		{"ten days and change", now.Add(10*24*time.Hour + time.Hour), true, 10},
		{"exactly thirty days", now.Add(30 * 24 * time.Hour), true, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Subscription{UserID: 42, ExpiryDate: tc.expiry}
			if got := s.ActiveAt(now); got != tc.active {
				t.Fatalf("ActiveAt = %v, want %v", got, tc.active)
			}
			if got := s.RemainingDays(now); got != tc.days {
				t.Fatalf("RemainingDays = %d, want %d", got, tc.days)
			}
		})
	}
}

func TestNewProductValidation(t *testing.T) {
	if _, err := NewProduct("", "d", 1, "XTR", 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty title: err = %v", err)
	}
	if _, err := NewProduct("t", "d", 0, "XTR", 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero amount: err = %v", err)
	}
	if _, err := NewProduct("t", "d", 1, "", 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty currency: err = %v", err)
	}
	if _, err := NewProduct("t", "d", 1, "XTR", -1); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("negative duration: err = %v", err)
	}
	p, err := NewProduct("t", "d", 1, "XTR", 0)
	if err != nil {
		t.Fatalf("valid product: %v", err)
	}
	if !p.Active {
		t.Fatal("new products start active")
	}
	if p.GrantsEntitlement() {
		t.Fatal("zero duration must not grant an entitlement")
	}
}
