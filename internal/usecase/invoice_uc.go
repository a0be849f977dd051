// File: internal/usecase/invoice_uc.go
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/adapter"
	"telegram-stars-store/internal/domain/ports/repository"
	"telegram-stars-store/internal/infra/metrics"
)

// Compile-time check
var _ InvoiceUseCase = (*invoiceUC)(nil)

// InvoiceUseCase prepares payment requests for the gateway. It validates
// the intent, stages donation state, and hands back the invoice to send;
// it never waits for the payment itself.
type InvoiceUseCase interface {
	// IssueProduct builds an invoice for an active product, payload
	// `product:<id>`. Unknown or inactive products fail with ErrNotFound.
	IssueProduct(ctx context.Context, userID, productID int64) (*adapter.InvoiceRequest, error)
	// IssueDonation bounds-checks the amount, stages a PendingDonation and
	// builds an invoice with payload `donation:<pendingID>`.
	IssueDonation(ctx context.Context, userID, amount int64, message *string) (*adapter.InvoiceRequest, error)
	// Bounds reports the configured donation amount range.
	Bounds() (min, max int64)
}

type invoiceUC struct {
	products  repository.ProductRepository
	donations repository.PendingDonationRepository
	currency  string
	minAmount int64
	maxAmount int64
	log       *zerolog.Logger
}

func NewInvoiceUseCase(
	products repository.ProductRepository,
	donations repository.PendingDonationRepository,
	currency string,
	minAmount, maxAmount int64,
	logger *zerolog.Logger,
) *invoiceUC {
	return &invoiceUC{
		products:  products,
		donations: donations,
		currency:  currency,
		minAmount: minAmount,
		maxAmount: maxAmount,
		log:       logger,
	}
}

func (u *invoiceUC) Bounds() (int64, int64) { return u.minAmount, u.maxAmount }

func (u *invoiceUC) IssueProduct(ctx context.Context, userID, productID int64) (*adapter.InvoiceRequest, error) {
	p, err := u.products.FindActiveByID(ctx, repository.NoTX, productID)
	if err != nil {
		return nil, err
	}

	reqID := ulid.Make().String()
	u.log.Info().Str("request_id", reqID).Int64("tg_id", userID).Int64("product_id", p.ID).Msg("issuing product invoice")

	desc := p.Description
	if desc == "" {
		desc = "-"
	}
	return &adapter.InvoiceRequest{
		UserID:      userID,
		Title:       p.Title,
		Description: desc,
		Payload:     model.ProductPayload(p.ID),
		Currency:    p.Currency,
		Amount:      p.Amount,
	}, nil
}

func (u *invoiceUC) IssueDonation(ctx context.Context, userID, amount int64, message *string) (*adapter.InvoiceRequest, error) {
	if amount < u.minAmount || amount > u.maxAmount {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", domain.ErrAmountOutOfRange, amount, u.minAmount, u.maxAmount)
	}

	pending := &model.PendingDonation{
		UserID:    userID,
		Amount:    amount,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.donations.Insert(ctx, repository.NoTX, pending); err != nil {
		return nil, err
	}
	metrics.IncDonationStaged()

	reqID := ulid.Make().String()
	u.log.Info().Str("request_id", reqID).Int64("tg_id", userID).Int64("pending_id", pending.ID).Int64("amount", amount).Msg("issuing donation invoice")

	desc := "Thank you for the support ❤️"
	if message != nil && *message != "" {
		desc = "💌 Message: " + *message
	}
	return &adapter.InvoiceRequest{
		UserID:      userID,
		Title:       "Support the bot 🌠",
		Description: desc,
		Payload:     model.DonationPayload(pending.ID),
		Currency:    u.currency,
		Amount:      amount,
	}, nil
}
