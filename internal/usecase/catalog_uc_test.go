// File: internal/usecase/catalog_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
)

func TestCatalogUC_CreateAndList(t *testing.T) {
	ctx := context.Background()
	products := newMemProductRepo()
	uc := NewCatalogUseCase(products, nopLogger())

	p, err := uc.Create(ctx, "Premium", "30 days of premium", 100, "XTR", 30)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == 0 || !p.Active {
		t.Fatalf("created product must be active with an id: %+v", p)
	}

	if _, err := uc.Create(ctx, "", "", 100, "XTR", 30); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("empty title: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := uc.Create(ctx, "Free", "", 0, "XTR", 30); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("zero amount: err = %v, want ErrInvalidArgument", err)
	}

	if err := uc.SetActive(ctx, p.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	active, err := uc.ActiveProducts(ctx, 0)
	if err != nil {
		t.Fatalf("ActiveProducts: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated product still listed: %d", len(active))
	}
	all, _ := uc.AllProducts(ctx)
	if len(all) != 1 {
		t.Fatalf("AllProducts = %d, want 1", len(all))
	}
}

func TestCatalogUC_Update(t *testing.T) {
	ctx := context.Background()
	products := newMemProductRepo()
	uc := NewCatalogUseCase(products, nopLogger())

	p, _ := uc.Create(ctx, "Premium", "old", 100, "XTR", 30)
	updated, err := uc.Update(ctx, p.ID, "Premium+", "new", 150, 60)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Premium+" || updated.Amount != 150 || updated.DurationDays != 60 {
		t.Fatalf("bad update: %+v", updated)
	}
	if _, err := uc.Update(ctx, 404, "x", "", 1, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestStatsUC_Snapshot(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture()
	p := &model.Product{Title: "Premium", Amount: 100, Currency: "XTR", DurationDays: 30, Active: true}
	_ = f.products.Save(ctx, p)

	for _, chargeID := range []string{"ch_1", "ch_2"} {
		ev := model.ChargeEvent{UserID: 42, TotalAmount: 100, Currency: "XTR", ChargeID: chargeID, Payload: model.ProductPayload(p.ID)}
		if _, err := f.uc.OnConfirmed(ctx, ev); err != nil {
			t.Fatalf("seed payment %s: %v", chargeID, err)
		}
	}

	uc := NewStatsUseCase(f.payments, f.subs)
	st, err := uc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if st.PaymentCount != 2 || st.RevenueTotal != 200 {
		t.Fatalf("snapshot = %+v, want 2 payments totaling 200", st)
	}
	if st.ActiveSubscriptions != 2 {
		t.Fatalf("ActiveSubscriptions = %d, want 2", st.ActiveSubscriptions)
	}
}
