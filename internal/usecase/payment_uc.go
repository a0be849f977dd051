// File: internal/usecase/payment_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
	"telegram-stars-store/internal/infra/logging"
	"telegram-stars-store/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// ConfirmationResult is the outcome of materializing one charge event.
// Anomaly is non-empty when the charge was recorded but its correlation
// could not be honored; such payments are never dropped.
type ConfirmationResult struct {
	Payment   *model.Payment
	Product   *model.Product      // resolved product, purchases only
	Granted   *model.Subscription // non-nil when an entitlement was created
	Duplicate bool
	Anomaly   string
}

// PaymentUseCase materializes confirmed charges into the durable ledger.
type PaymentUseCase interface {
	// OnConfirmed records the charge, grants an entitlement for qualifying
	// products and consumes the staged donation intent, all in one
	// transaction. A replayed charge id is a successful no-op with
	// Duplicate set.
	OnConfirmed(ctx context.Context, ev model.ChargeEvent) (*ConfirmationResult, error)
}

type paymentUC struct {
	tm        repository.TransactionManager
	payments  repository.PaymentRepository
	products  repository.ProductRepository
	subs      repository.SubscriptionRepository
	donations repository.PendingDonationRepository
	log       *zerolog.Logger
}

func NewPaymentUseCase(
	tm repository.TransactionManager,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	subs repository.SubscriptionRepository,
	donations repository.PendingDonationRepository,
	logger *zerolog.Logger,
) *paymentUC {
	return &paymentUC{
		tm:        tm,
		payments:  payments,
		products:  products,
		subs:      subs,
		donations: donations,
		log:       logger,
	}
}

func (u *paymentUC) OnConfirmed(ctx context.Context, ev model.ChargeEvent) (*ConfirmationResult, error) {
	ctx = logging.WithChargeID(ctx, ev.ChargeID)
	log := logging.With(ctx, u.log)

	cor := model.ParseCorrelation(ev.Payload)
	res := &ConfirmationResult{}

	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, qx repository.Tx) error {
		now := time.Now().UTC()
		payment := &model.Payment{
			UserID:   ev.UserID,
			Amount:   ev.TotalAmount,
			Currency: ev.Currency,
			ChargeID: ev.ChargeID,
			Date:     now,
		}

		switch cor.Kind {
		case model.CorrelationProduct:
			// The payload-derived product id is linked regardless of the
			// product's fate: a refund or manual reconciliation needs the
			// correlation even when no entitlement follows.
			pid := cor.ProductID
			payment.ProductID = &pid
			p, err := u.products.FindByID(ctx, qx, cor.ProductID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				res.Anomaly = "paid product no longer exists"
			case err != nil:
				return err
			case !p.Active:
				res.Product = p
				res.Anomaly = "paid product was deactivated before confirmation"
			default:
				res.Product = p
			}

		case model.CorrelationDonation:
			pd, err := u.donations.FindByID(ctx, qx, cor.PendingID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				res.Anomaly = "staged donation intent not found"
			case err != nil:
				return err
			default:
				payment.Message = pd.Message
				if err := u.donations.Delete(ctx, qx, pd.ID); err != nil {
					return err
				}
			}

		default:
			res.Anomaly = "unrecognized invoice payload"
		}

		if err := u.payments.Insert(ctx, qx, payment); err != nil {
			return err
		}
		res.Payment = payment

		if res.Anomaly == "" && res.Product != nil && res.Product.GrantsEntitlement() {
			sub, err := model.NewSubscription(ev.UserID, res.Product, now)
			if err != nil {
				return err
			}
			if err := u.subs.Insert(ctx, qx, sub); err != nil {
				return err
			}
			res.Granted = sub
		}
		return nil
	})

	if errors.Is(err, domain.ErrDuplicateCharge) {
		metrics.IncDuplicateCharge()
		log.Info().Msg("charge already recorded, skipping")
		return &ConfirmationResult{Duplicate: true}, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("payment confirmation failed")
		return nil, err
	}

	metrics.IncPayment(string(cor.Kind))
	metrics.AddPaymentRevenue(ev.Currency, ev.TotalAmount)
	if res.Granted != nil {
		metrics.IncSubscriptionGranted()
	}
	if res.Anomaly != "" {
		metrics.IncReconciliationAnomaly()
		log.Warn().Str("payload", ev.Payload).Str("reason", res.Anomaly).Msg("reconciliation anomaly")
	} else {
		log.Info().Int64("payment_id", res.Payment.ID).Int64("amount", ev.TotalAmount).Msg("payment recorded")
	}
	return res, nil
}
