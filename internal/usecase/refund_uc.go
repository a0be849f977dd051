// File: internal/usecase/refund_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
	"telegram-stars-store/internal/infra/logging"
)

// Compile-time check
var _ RefundUseCase = (*refundUC)(nil)

// RefundUseCase marks payments as refunded in the local ledger. The actual
// transfer of funds happens on the Telegram side; this is bookkeeping.
type RefundUseCase interface {
	// Mark flags the payment and appends an audit record, atomically.
	// An unknown charge id fails with domain.ErrNotFound and leaves no
	// audit trace.
	Mark(ctx context.Context, chargeID string, adminID int64, reason string) (*model.Payment, error)
	History(ctx context.Context, limit int) ([]*model.RefundRecord, error)
}

type refundUC struct {
	tm       repository.TransactionManager
	payments repository.PaymentRepository
	refunds  repository.RefundRepository
	log      *zerolog.Logger
}

func NewRefundUseCase(
	tm repository.TransactionManager,
	payments repository.PaymentRepository,
	refunds repository.RefundRepository,
	logger *zerolog.Logger,
) *refundUC {
	return &refundUC{tm: tm, payments: payments, refunds: refunds, log: logger}
}

func (u *refundUC) Mark(ctx context.Context, chargeID string, adminID int64, reason string) (*model.Payment, error) {
	if reason == "" {
		reason = model.DefaultRefundReason
	}
	ctx = logging.WithChargeID(ctx, chargeID)

	var payment *model.Payment
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, qx repository.Tx) error {
		p, err := u.payments.FindByChargeID(ctx, qx, chargeID)
		if err != nil {
			return err
		}
		if _, err := u.payments.MarkRefunded(ctx, qx, chargeID); err != nil {
			return err
		}
		rec := &model.RefundRecord{
			ChargeID: chargeID,
			AdminID:  adminID,
			Reason:   reason,
			Date:     time.Now().UTC(),
		}
		if err := u.refunds.Append(ctx, qx, rec); err != nil {
			return err
		}
		p.Refunded = true
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.With(ctx, u.log).Info().Int64("admin_id", adminID).Msg("payment marked refunded")
	return payment, nil
}

func (u *refundUC) History(ctx context.Context, limit int) ([]*model.RefundRecord, error) {
	return u.refunds.ListRecent(ctx, repository.NoTX, limit)
}
