// File: internal/usecase/refund_uc_test.go
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

func newRefundFixture() (*refundUC, *memPaymentRepo, *memRefundRepo) {
	payments := newMemPaymentRepo()
	refunds := newMemRefundRepo()
	uc := NewRefundUseCase(&mockTxManager{}, payments, refunds, nopLogger())
	return uc, payments, refunds
}

func TestRefundUC_Mark(t *testing.T) {
	ctx := context.Background()
	uc, payments, refunds := newRefundFixture()
	_ = payments.Insert(ctx, repository.NoTX, &model.Payment{
		UserID: 42, Amount: 100, Currency: "XTR", ChargeID: "ch_1", Date: time.Now(),
	})

	p, err := uc.Mark(ctx, "ch_1", 99, "")
	if err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if !p.Refunded {
		t.Fatal("returned payment must carry the refunded flag")
	}
	stored, _ := payments.FindByChargeID(ctx, repository.NoTX, "ch_1")
	if !stored.Refunded {
		t.Fatal("stored payment must be flagged refunded")
	}
	recs, _ := refunds.ListRecent(ctx, repository.NoTX, 10)
	if len(recs) != 1 {
		t.Fatalf("refund records = %d, want 1", len(recs))
	}
	if recs[0].Reason != model.DefaultRefundReason || recs[0].AdminID != 99 {
		t.Fatalf("bad audit record: %+v", recs[0])
	}
}

func TestRefundUC_Mark_UnknownChargeLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	uc, _, refunds := newRefundFixture()

	_, err := uc.Mark(ctx, "ch_missing", 99, "typo")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if recs, _ := refunds.ListRecent(ctx, repository.NoTX, 10); len(recs) != 0 {
		t.Fatalf("failed refund must not leave audit records, got %d", len(recs))
	}
}

func TestRefundUC_History(t *testing.T) {
	ctx := context.Background()
	uc, _, refunds := newRefundFixture()
	for i := 0; i < 3; i++ {
		_ = refunds.Append(ctx, repository.NoTX, &model.RefundRecord{ChargeID: "ch", AdminID: 1, Reason: "r", Date: time.Now()})
	}

	recs, err := uc.History(ctx, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].ID < recs[1].ID {
		t.Fatal("history must be newest first")
	}
}
