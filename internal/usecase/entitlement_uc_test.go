// File: internal/usecase/entitlement_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

func TestEntitlementUC_Current(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rows     []*model.Subscription
		wantErr  error
		wantAct  bool
		wantDays int
	}{
		{
			name:    "never subscribed",
			wantErr: domain.ErrNotFound,
		},
		{
			name: "active with remaining days",
			rows: []*model.Subscription{
				{UserID: 42, ProductID: 1, StartDate: now.AddDate(0, 0, -5), ExpiryDate: now.Add(10*24*time.Hour + 6*time.Hour)},
			},
			wantAct:  true,
			wantDays: 10,
		},
		{
			name: "expired",
			rows: []*model.Subscription{
				{UserID: 42, ProductID: 1, StartDate: now.AddDate(0, 0, -40), ExpiryDate: now.AddDate(0, 0, -10)},
			},
			wantAct:  false,
			wantDays: 0,
		},
		{
			name: "latest row wins over older active one",
			rows: []*model.Subscription{
				{UserID: 42, ProductID: 1, StartDate: now.AddDate(0, 0, -5), ExpiryDate: now.AddDate(0, 0, 25)},
				{UserID: 42, ProductID: 2, StartDate: now.AddDate(0, 0, -40), ExpiryDate: now.AddDate(0, 0, -10)},
			},
			wantAct:  false,
			wantDays: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subs := newMemSubscriptionRepo()
			for _, s := range tc.rows {
				_ = subs.Insert(ctx, repository.NoTX, s)
			}
			uc := NewEntitlementUseCase(subs)
			uc.now = func() time.Time { return now }

			st, err := uc.Current(ctx, 42)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Current: %v", err)
			}
			if st.Active != tc.wantAct {
				t.Fatalf("Active = %v, want %v", st.Active, tc.wantAct)
			}
			if st.RemainingDays != tc.wantDays {
				t.Fatalf("RemainingDays = %d, want %d", st.RemainingDays, tc.wantDays)
			}
		})
	}
}
