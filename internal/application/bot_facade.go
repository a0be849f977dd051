// File: internal/application/bot_facade.go
package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/adapter"
	"telegram-stars-store/internal/domain/ports/repository"
	"telegram-stars-store/internal/infra/logging"
	"telegram-stars-store/internal/usecase"
)

// donationPresets are the quick-pick amounts offered in the donate flow.
var donationPresets = []int64{1, 2, 5, 10, 20, 50, 100, 500, 1000}

// Reply is one outgoing interaction. The Telegram adapter forwards Text (and
// Buttons) to the chat, and submits Invoice to the gateway when set.
type Reply struct {
	Text    string
	Buttons [][]adapter.InlineButton
	Invoice *adapter.InvoiceRequest
}

func textReply(format string, args ...any) *Reply {
	return &Reply{Text: fmt.Sprintf(format, args...)}
}

// BotFacade composes usecases into high-level bot commands.
// Keep the facade returning Replies so the Telegram adapter just forwards them.
type BotFacade struct {
	CatalogUC     usecase.CatalogUseCase
	InvoiceUC     usecase.InvoiceUseCase
	PaymentUC     usecase.PaymentUseCase
	EntitlementUC usecase.EntitlementUseCase
	RefundUC      usecase.RefundUseCase
	StatsUC       usecase.StatsUseCase
	State         repository.StateRepository

	admins map[int64]struct{}
	log    *zerolog.Logger
}

func NewBotFacade(
	catalogUC usecase.CatalogUseCase,
	invoiceUC usecase.InvoiceUseCase,
	paymentUC usecase.PaymentUseCase,
	entitlementUC usecase.EntitlementUseCase,
	refundUC usecase.RefundUseCase,
	statsUC usecase.StatsUseCase,
	state repository.StateRepository,
	adminIDs []int64,
	logger *zerolog.Logger,
) *BotFacade {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &BotFacade{
		CatalogUC:     catalogUC,
		InvoiceUC:     invoiceUC,
		PaymentUC:     paymentUC,
		EntitlementUC: entitlementUC,
		RefundUC:      refundUC,
		StatsUC:       statsUC,
		State:         state,
		admins:        admins,
		log:           logger,
	}
}

// IsAdmin reports whether the Telegram id belongs to the configured admin set.
func (b *BotFacade) IsAdmin(tgID int64) bool {
	_, ok := b.admins[tgID]
	return ok
}

const deniedReply = "⛔ This command is for administrators only."

// ---- user commands ----

func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, username string) *Reply {
	name := username
	if name == "" {
		name = "there"
	}
	return textReply("Hello %s! 🌠\n\nThis bot sells premium access and accepts donations, paid with Telegram Stars.\n\n/pay — browse the catalog\n/donate — support the bot\n/premium — check your access\n/help — all commands", name)
}

func (b *BotFacade) HandleHelp(ctx context.Context, tgID int64) *Reply {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	sb.WriteString("/pay — browse products\n")
	sb.WriteString("/donate — send a donation\n")
	sb.WriteString("/premium — your current access\n")
	sb.WriteString("/cancel — abort the current flow\n")
	if b.IsAdmin(tgID) {
		sb.WriteString("\nAdmin:\n")
		sb.WriteString("/admin — control panel\n")
		sb.WriteString("/stats — totals\n")
		sb.WriteString("/add_product title | description | amount | days\n")
		sb.WriteString("/edit_product id | title | description | amount | days\n")
		sb.WriteString("/set_product_status id on|off\n")
		sb.WriteString("/delete_product id\n")
		sb.WriteString("/mark_refund charge_id [reason]\n")
	}
	return &Reply{Text: sb.String()}
}

// HandleCatalog lists active products with buy buttons.
func (b *BotFacade) HandleCatalog(ctx context.Context) *Reply {
	products, err := b.CatalogUC.ActiveProducts(ctx, 0)
	if err != nil {
		b.log.Error().Err(err).Msg("list products")
		return textReply("Something went wrong, please try again later.")
	}
	if len(products) == 0 {
		return textReply("Nothing for sale right now. Check back later!")
	}

	var sb strings.Builder
	var rows [][]adapter.InlineButton
	sb.WriteString("🛍 Available products:\n\n")
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("• %s — %d ⭐", p.Title, p.Amount))
		if p.DurationDays > 0 {
			sb.WriteString(fmt.Sprintf(" (%d days)", p.DurationDays))
		}
		sb.WriteString("\n")
		if p.Description != "" {
			sb.WriteString("  " + p.Description + "\n")
		}
		rows = append(rows, []adapter.InlineButton{{
			Text: fmt.Sprintf("%s · %d ⭐", p.Title, p.Amount),
			Data: fmt.Sprintf("buy:%d", p.ID),
		}})
	}
	return &Reply{Text: sb.String(), Buttons: rows}
}

// HandleBuy issues an invoice for the chosen product.
func (b *BotFacade) HandleBuy(ctx context.Context, tgID, productID int64) *Reply {
	req, err := b.InvoiceUC.IssueProduct(ctx, tgID, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply("That product is no longer available.")
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Int64("product_id", productID).Msg("issue product invoice")
		return textReply("Could not prepare the invoice, please try again.")
	}
	return &Reply{Invoice: req}
}

// HandleStatus reports the latest entitlement for the user.
func (b *BotFacade) HandleStatus(ctx context.Context, tgID int64) *Reply {
	st, err := b.EntitlementUC.Current(ctx, tgID)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply("You have no premium access yet. Use /pay to get some! ✨")
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("entitlement lookup")
		return textReply("Something went wrong, please try again later.")
	}
	if !st.Active {
		return textReply("Your premium access expired on %s.\nUse /pay to renew.", st.Subscription.ExpiryDate.Format("2 Jan 2006"))
	}
	return textReply("⭐ Premium is active!\nExpires: %s\nDays left: %d", st.Subscription.ExpiryDate.Format("2 Jan 2006"), st.RemainingDays)
}

// ---- donation flow ----

// StartDonation begins the conversational flow: optional message first.
func (b *BotFacade) StartDonation(ctx context.Context, tgID int64) *Reply {
	if err := b.State.SetState(ctx, tgID, &repository.ConversationState{Step: repository.StepAwaitingMessage}); err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("set donation state")
		return textReply("Something went wrong, please try again later.")
	}
	return &Reply{
		Text: "💌 Want to attach a message to your donation? Send it now, or skip.",
		Buttons: [][]adapter.InlineButton{
			{{Text: "Skip", Data: "skip_message"}},
		},
	}
}

func (b *BotFacade) presetKeyboard() [][]adapter.InlineButton {
	var rows [][]adapter.InlineButton
	var row []adapter.InlineButton
	for _, amt := range donationPresets {
		row = append(row, adapter.InlineButton{
			Text: fmt.Sprintf("%d ⭐", amt),
			Data: fmt.Sprintf("donate:%d", amt),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []adapter.InlineButton{{Text: "Custom amount", Data: "donate:custom"}})
	return rows
}

// HandleSkipMessage advances the flow without a supporter message.
func (b *BotFacade) HandleSkipMessage(ctx context.Context, tgID int64) *Reply {
	if err := b.State.SetState(ctx, tgID, &repository.ConversationState{Step: repository.StepAwaitingAmount}); err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("set donation state")
		return textReply("Something went wrong, please try again later.")
	}
	return &Reply{Text: "How much would you like to donate?", Buttons: b.presetKeyboard()}
}

// HandleDonateCustom asks for a free-form amount.
func (b *BotFacade) HandleDonateCustom(ctx context.Context, tgID int64) *Reply {
	st, err := b.State.GetState(ctx, tgID)
	if err != nil {
		st = &repository.ConversationState{}
	}
	st.Step = repository.StepAwaitingCustomAmount
	if err := b.State.SetState(ctx, tgID, st); err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("set donation state")
		return textReply("Something went wrong, please try again later.")
	}
	min, max := b.InvoiceUC.Bounds()
	return textReply("Enter an amount between %d and %d ⭐:", min, max)
}

// HandleDonateAmount finishes the flow for a chosen amount.
func (b *BotFacade) HandleDonateAmount(ctx context.Context, tgID, amount int64) *Reply {
	var msg *string
	if st, err := b.State.GetState(ctx, tgID); err == nil && st.HasMsg {
		m := st.Message
		msg = &m
	}

	req, err := b.InvoiceUC.IssueDonation(ctx, tgID, amount, msg)
	if errors.Is(err, domain.ErrAmountOutOfRange) {
		min, max := b.InvoiceUC.Bounds()
		return textReply("Amount must be between %d and %d ⭐. Try again:", min, max)
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("issue donation invoice")
		return textReply("Could not prepare the invoice, please try again.")
	}
	if err := b.State.ClearState(ctx, tgID); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("clear donation state")
	}
	return &Reply{Invoice: req}
}

// HandleDonationText routes a plain text message through the donation flow.
// The second return value is false when the user has no flow in progress.
func (b *BotFacade) HandleDonationText(ctx context.Context, tgID int64, text string) (*Reply, bool) {
	st, err := b.State.GetState(ctx, tgID)
	if err != nil {
		return nil, false
	}

	switch st.Step {
	case repository.StepAwaitingMessage:
		st.Message = text
		st.HasMsg = true
		st.Step = repository.StepAwaitingAmount
		if err := b.State.SetState(ctx, tgID, st); err != nil {
			logging.With(ctx, b.log).Error().Err(err).Msg("set donation state")
			return textReply("Something went wrong, please try again later."), true
		}
		return &Reply{Text: "Got it! How much would you like to donate?", Buttons: b.presetKeyboard()}, true

	case repository.StepAwaitingAmount, repository.StepAwaitingCustomAmount:
		amount, perr := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if perr != nil {
			min, max := b.InvoiceUC.Bounds()
			return textReply("Please send a whole number between %d and %d, or use the buttons.", min, max), true
		}
		return b.HandleDonateAmount(ctx, tgID, amount), true

	default:
		return nil, false
	}
}

// HandleCancel aborts any flow in progress.
func (b *BotFacade) HandleCancel(ctx context.Context, tgID int64) *Reply {
	if err := b.State.ClearState(ctx, tgID); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("clear state")
	}
	return textReply("Cancelled. Nothing is in progress now.")
}

// ---- payments ----

// ApprovePreCheckout is the last gate before Telegram charges the user.
// The invoice was validated at issue time, so this always approves; it exists
// to log the attempt.
func (b *BotFacade) ApprovePreCheckout(ctx context.Context, tgID int64, payload string) bool {
	logging.With(ctx, b.log).Info().Int64("tg_id", tgID).Str("payload", payload).Msg("pre-checkout approved")
	return true
}

// HandleSuccessfulPayment materializes the charge and composes the payer
// reply plus an admin broadcast. Either may be empty.
func (b *BotFacade) HandleSuccessfulPayment(ctx context.Context, ev model.ChargeEvent) (payer *Reply, admin string) {
	res, err := b.PaymentUC.OnConfirmed(ctx, ev)
	if err != nil {
		return textReply("⚠️ We received your payment but could not finalize it. Support has been alerted."),
			fmt.Sprintf("🚨 Payment processing FAILED\nCharge: %s\nUser: %d\nAmount: %d %s\nError: %v",
				ev.ChargeID, ev.UserID, ev.TotalAmount, ev.Currency, err)
	}
	if res.Duplicate {
		// Replayed confirmation: everything was already done and said.
		return nil, ""
	}
	if res.Anomaly != "" {
		return textReply("✅ Payment received, thank you!"),
			fmt.Sprintf("🚨 Reconciliation anomaly\nCharge: %s\nUser: %d\nAmount: %d %s\nPayload: %q\nReason: %s",
				ev.ChargeID, ev.UserID, ev.TotalAmount, ev.Currency, ev.Payload, res.Anomaly)
	}

	who := ev.Username
	if who == "" {
		who = strconv.FormatInt(ev.UserID, 10)
	}

	if res.Payment.ProductID != nil {
		admin = fmt.Sprintf("💰 New purchase\nUser: %s\nProduct: %s\nAmount: %d %s\nCharge: %s",
			who, res.Product.Title, ev.TotalAmount, ev.Currency, ev.ChargeID)
		if res.Granted != nil {
			payer = textReply("✅ Payment received!\n⭐ %s is active until %s (%d days).",
				res.Product.Title,
				res.Granted.ExpiryDate.Format("2 Jan 2006"),
				res.Granted.RemainingDays(time.Now().UTC()))
		} else {
			payer = textReply("✅ Payment received! Enjoy %s.", res.Product.Title)
		}
		return payer, admin
	}

	payer = textReply("🙏 Thank you for donating %d ⭐!", ev.TotalAmount)
	admin = fmt.Sprintf("💝 New donation\nUser: %s\nAmount: %d %s\nCharge: %s", who, ev.TotalAmount, ev.Currency, ev.ChargeID)
	if res.Payment.Message != nil && *res.Payment.Message != "" {
		admin += "\nMessage: " + *res.Payment.Message
	}
	return payer, admin
}

// ---- admin commands ----

func (b *BotFacade) HandleAdminPanel(ctx context.Context, tgID int64) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	return &Reply{
		Text: "🛠 Admin panel",
		Buttons: [][]adapter.InlineButton{
			{{Text: "📊 Stats", Data: "admin:stats"}, {Text: "📦 Products", Data: "admin:products"}},
			{{Text: "↩️ Refund history", Data: "admin:refunds"}},
		},
	}
}

func (b *BotFacade) HandleStats(ctx context.Context, tgID int64) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	st, err := b.StatsUC.Snapshot(ctx)
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("stats snapshot")
		return textReply("Could not gather stats right now.")
	}
	return textReply("📊 Totals\n\n💳 Payments: %d\n⭐ Revenue: %d\n📦 Active subscriptions: %d",
		st.PaymentCount, st.RevenueTotal, st.ActiveSubscriptions)
}

// HandleProductAdmin lists every product, active or not, with its id.
func (b *BotFacade) HandleProductAdmin(ctx context.Context, tgID int64) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	products, err := b.CatalogUC.AllProducts(ctx)
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("list all products")
		return textReply("Could not list products right now.")
	}
	if len(products) == 0 {
		return textReply("No products yet. Create one with /add_product.")
	}
	var sb strings.Builder
	sb.WriteString("📦 Products:\n\n")
	for _, p := range products {
		status := "🟢"
		if !p.Active {
			status = "🔴"
		}
		sb.WriteString(fmt.Sprintf("%s #%d %s — %d ⭐, %d days\n", status, p.ID, p.Title, p.Amount, p.DurationDays))
	}
	return &Reply{Text: sb.String()}
}

// HandleAddProduct parses "title | description | amount | days".
func (b *BotFacade) HandleAddProduct(ctx context.Context, tgID int64, args string) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	title, description, amount, days, err := parseProductArgs(args)
	if err != nil {
		return textReply("Usage: /add_product title | description | amount | days")
	}
	p, err := b.CatalogUC.Create(ctx, title, description, amount, "XTR", days)
	if errors.Is(err, domain.ErrInvalidArgument) {
		return textReply("Invalid product: title must be set, amount positive, days non-negative.")
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("create product")
		return textReply("Could not create the product.")
	}
	return textReply("✅ Created product #%d: %s (%d ⭐, %d days).", p.ID, p.Title, p.Amount, p.DurationDays)
}

// HandleEditProduct parses "id | title | description | amount | days".
func (b *BotFacade) HandleEditProduct(ctx context.Context, tgID int64, args string) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	parts := splitArgs(args, 5)
	if len(parts) != 5 {
		return textReply("Usage: /edit_product id | title | description | amount | days")
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return textReply("Product id must be a number.")
	}
	title, description, amount, days, err := parseProductArgs(strings.Join(parts[1:], " | "))
	if err != nil {
		return textReply("Usage: /edit_product id | title | description | amount | days")
	}
	p, err := b.CatalogUC.Update(ctx, id, title, description, amount, days)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply("No product with id %d.", id)
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("update product")
		return textReply("Could not update the product.")
	}
	return textReply("✅ Updated product #%d: %s (%d ⭐, %d days).", p.ID, p.Title, p.Amount, p.DurationDays)
}

// HandleSetProductStatus parses "id on|off".
func (b *BotFacade) HandleSetProductStatus(ctx context.Context, tgID int64, args string) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return textReply("Usage: /set_product_status id on|off")
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return textReply("Product id must be a number.")
	}
	var active bool
	switch strings.ToLower(fields[1]) {
	case "on":
		active = true
	case "off":
		active = false
	default:
		return textReply("Usage: /set_product_status id on|off")
	}
	if err := b.CatalogUC.SetActive(ctx, id, active); errors.Is(err, domain.ErrNotFound) {
		return textReply("No product with id %d.", id)
	} else if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("set product status")
		return textReply("Could not change the product status.")
	}
	state := "deactivated"
	if active {
		state = "activated"
	}
	return textReply("✅ Product #%d %s.", id, state)
}

func (b *BotFacade) HandleDeleteProduct(ctx context.Context, tgID int64, args string) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		return textReply("Usage: /delete_product id")
	}
	if err := b.CatalogUC.Delete(ctx, id); errors.Is(err, domain.ErrNotFound) {
		return textReply("No product with id %d.", id)
	} else if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("delete product")
		return textReply("Could not delete the product.")
	}
	return textReply("✅ Product #%d deleted.", id)
}

// HandleMarkRefund parses "charge_id [reason...]". Besides the admin
// confirmation it composes a notice for the original payer; the adapter
// delivers that one best-effort.
func (b *BotFacade) HandleMarkRefund(ctx context.Context, tgID int64, args string) (admin *Reply, payerID int64, payer *Reply) {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply), 0, nil
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return textReply("Usage: /mark_refund charge_id [reason]"), 0, nil
	}
	chargeID := fields[0]
	reason := strings.Join(fields[1:], " ")

	p, err := b.RefundUC.Mark(ctx, chargeID, tgID, reason)
	if errors.Is(err, domain.ErrNotFound) {
		return textReply("No payment with charge id %q.", chargeID), 0, nil
	}
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("mark refund")
		return textReply("Could not mark the refund."), 0, nil
	}
	admin = textReply("↩️ Marked charge %s (user %d, %d %s) as refunded.", p.ChargeID, p.UserID, p.Amount, p.Currency)
	payer = textReply("↩️ Your payment of %d %s has been refunded.", p.Amount, p.Currency)
	return admin, p.UserID, payer
}

func (b *BotFacade) HandleRefundHistory(ctx context.Context, tgID int64) *Reply {
	if !b.IsAdmin(tgID) {
		return textReply(deniedReply)
	}
	recs, err := b.RefundUC.History(ctx, 20)
	if err != nil {
		logging.With(ctx, b.log).Error().Err(err).Msg("refund history")
		return textReply("Could not list refunds right now.")
	}
	if len(recs) == 0 {
		return textReply("No refunds recorded.")
	}
	var sb strings.Builder
	sb.WriteString("↩️ Recent refunds:\n\n")
	for _, r := range recs {
		sb.WriteString(fmt.Sprintf("• %s — %s (by %d, %s)\n", r.ChargeID, r.Reason, r.AdminID, r.Date.Format("2 Jan 2006")))
	}
	return &Reply{Text: sb.String()}
}

// HandleUnknown is the catch-all for messages outside any flow.
func (b *BotFacade) HandleUnknown(ctx context.Context, tgID int64) *Reply {
	return textReply("I didn't catch that. Try /help for the list of commands.")
}

// ---- arg parsing helpers ----

func splitArgs(args string, max int) []string {
	parts := strings.SplitN(args, "|", max)
	out := parts[:0]
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func parseProductArgs(args string) (title, description string, amount int64, days int, err error) {
	parts := splitArgs(args, 4)
	if len(parts) != 4 {
		return "", "", 0, 0, domain.ErrInvalidArgument
	}
	amount, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, 0, domain.ErrInvalidArgument
	}
	days64, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return "", "", 0, 0, domain.ErrInvalidArgument
	}
	return parts[0], parts[1], amount, int(days64), nil
}
