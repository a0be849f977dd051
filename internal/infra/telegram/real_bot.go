// File: internal/infra/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-stars-store/internal/application"
	"telegram-stars-store/internal/config"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/adapter"
	"telegram-stars-store/internal/infra/logging"
	"telegram-stars-store/internal/infra/metrics"
	"telegram-stars-store/internal/infra/redis"
)

// commandRateLimit caps how many times one user may run the same command
// inside commandRateWindow.
const (
	commandRateLimit  = 20
	commandRateWindow = time.Minute
)

// Compile-time check
var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter implements adapter.TelegramBotAdapter using tgbotapi with
// concurrent long polling.
type RealBotAdapter struct {
	bot           *tgbotapi.BotAPI
	cfg           *config.Config
	facade        *application.BotFacade
	limiter       *redis.RateLimiter
	log           *zerolog.Logger
	updateWorkers int
	cancelPolling context.CancelFunc

	cmdRoutes      map[string]func(ctx context.Context, msg *tgbotapi.Message) *application.Reply
	cbRoutes       map[string]func(ctx context.Context, tgID int64) *application.Reply
	cbPrefixRoutes []cbPrefixRoute
}

type cbPrefixRoute struct {
	prefix string
	fn     func(ctx context.Context, tgID int64, rest string) *application.Reply
}

// NewRealBotAdapter creates the adapter and verifies the token against the
// Telegram API. limiter may be nil to disable command rate limiting.
func NewRealBotAdapter(cfg *config.Config, facade *application.BotFacade, limiter *redis.RateLimiter, logger *zerolog.Logger) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}

	workers := cfg.Bot.Workers
	if workers <= 0 {
		workers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}

	r := &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		limiter:       limiter,
		log:           logger,
		updateWorkers: workers,
	}
	r.buildRoutes()
	return r, nil
}

func (r *RealBotAdapter) buildRoutes() {
	f := r.facade

	r.cmdRoutes = map[string]func(ctx context.Context, msg *tgbotapi.Message) *application.Reply{
		"start": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleStart(ctx, m.From.ID, m.From.UserName)
		},
		"help": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleHelp(ctx, m.From.ID)
		},
		"pay": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleCatalog(ctx)
		},
		"premium": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleStatus(ctx, m.From.ID)
		},
		"donate": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.StartDonation(ctx, m.From.ID)
		},
		"cancel": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleCancel(ctx, m.From.ID)
		},
		"admin": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleAdminPanel(ctx, m.From.ID)
		},
		"stats": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleStats(ctx, m.From.ID)
		},
		"add_product": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleAddProduct(ctx, m.From.ID, m.CommandArguments())
		},
		"edit_product": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleEditProduct(ctx, m.From.ID, m.CommandArguments())
		},
		"set_product_status": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleSetProductStatus(ctx, m.From.ID, m.CommandArguments())
		},
		"delete_product": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			return f.HandleDeleteProduct(ctx, m.From.ID, m.CommandArguments())
		},
		"mark_refund": func(ctx context.Context, m *tgbotapi.Message) *application.Reply {
			admin, payerID, payer := f.HandleMarkRefund(ctx, m.From.ID, m.CommandArguments())
			if payer != nil {
				r.deliver(ctx, payerID, payer)
			}
			return admin
		},
	}

	r.cbRoutes = map[string]func(ctx context.Context, tgID int64) *application.Reply{
		"skip_message":   f.HandleSkipMessage,
		"donate:custom":  f.HandleDonateCustom,
		"admin:stats":    f.HandleStats,
		"admin:products": f.HandleProductAdmin,
		"admin:refunds":  f.HandleRefundHistory,
	}

	r.cbPrefixRoutes = []cbPrefixRoute{
		{prefix: "buy:", fn: func(ctx context.Context, tgID int64, rest string) *application.Reply {
			id, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return nil
			}
			return f.HandleBuy(ctx, tgID, id)
		}},
		{prefix: "donate:", fn: func(ctx context.Context, tgID int64, rest string) *application.Reply {
			amount, err := strconv.ParseInt(rest, 10, 64)
			if err != nil {
				return nil
			}
			return f.HandleDonateAmount(ctx, tgID, amount)
		}},
	}
}

// StartPolling begins polling Telegram for updates concurrently.
// It runs until ctx is canceled.
func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					r.handleUpdate(ctx, update)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// Dispatcher goroutine: feed updates into updateChan
	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	<-ctx.Done()
	r.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// ---- adapter.TelegramBotAdapter ----

func (r *RealBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(tgID, text))
	return err
}

func (r *RealBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	msg := tgbotapi.NewMessage(tgID, text)
	msg.ReplyMarkup = buildMarkup(rows)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) SendInvoice(ctx context.Context, req adapter.InvoiceRequest) error {
	inv := tgbotapi.NewInvoice(
		req.UserID,
		req.Title,
		req.Description,
		req.Payload,
		r.cfg.Payment.ProviderToken, // empty for Telegram Stars
		"",
		req.Currency,
		[]tgbotapi.LabeledPrice{{Label: req.Title, Amount: int(req.Amount)}},
	)
	_, err := r.bot.Request(inv)
	return err
}

func buildMarkup(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var line []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			if b.URL != "" {
				line = append(line, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			line = append(line, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		keyboard = append(keyboard, line)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// ---- update handling ----

func (r *RealBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		metrics.IncBotUpdate("precheckout")
		r.handlePreCheckout(ctx, update.PreCheckoutQuery)
	case update.CallbackQuery != nil:
		metrics.IncBotUpdate("callback")
		r.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		metrics.IncBotUpdate("payment")
		r.handleSuccessfulPayment(ctx, update.Message)
	case update.Message != nil:
		metrics.IncBotUpdate("message")
		r.handleMessage(ctx, update.Message)
	}
}

func (r *RealBotAdapter) handlePreCheckout(ctx context.Context, q *tgbotapi.PreCheckoutQuery) {
	ok := r.facade.ApprovePreCheckout(ctx, q.From.ID, q.InvoicePayload)
	answer := tgbotapi.PreCheckoutConfig{PreCheckoutQueryID: q.ID, OK: ok}
	if !ok {
		answer.ErrorMessage = "This payment can no longer be processed. Please start over."
	}
	if _, err := r.bot.Request(answer); err != nil {
		r.log.Error().Err(err).Int64("tg_id", q.From.ID).Msg("answer pre-checkout")
	}
}

func (r *RealBotAdapter) handleSuccessfulPayment(ctx context.Context, msg *tgbotapi.Message) {
	sp := msg.SuccessfulPayment
	ev := model.ChargeEvent{
		UserID:      msg.From.ID,
		Username:    msg.From.UserName,
		TotalAmount: int64(sp.TotalAmount),
		Currency:    sp.Currency,
		ChargeID:    sp.TelegramPaymentChargeID,
		Payload:     sp.InvoicePayload,
	}
	ctx = logging.WithTgID(logging.WithChargeID(ctx, ev.ChargeID), ev.UserID)

	payer, admin := r.facade.HandleSuccessfulPayment(ctx, ev)
	if payer != nil {
		r.deliver(ctx, msg.From.ID, payer)
	}
	if admin != "" {
		r.notifyAdmins(ctx, admin)
	}
}

func (r *RealBotAdapter) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Ack first so the client stops its spinner.
	if _, err := r.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		r.log.Warn().Err(err).Msg("ack callback")
	}
	if cq.From == nil {
		return
	}
	tgID := cq.From.ID
	ctx = logging.WithTgID(ctx, tgID)
	data := cq.Data

	if fn, ok := r.cbRoutes[data]; ok {
		r.deliver(ctx, tgID, fn(ctx, tgID))
		return
	}
	for _, route := range r.cbPrefixRoutes {
		if strings.HasPrefix(data, route.prefix) {
			r.deliver(ctx, tgID, route.fn(ctx, tgID, strings.TrimPrefix(data, route.prefix)))
			return
		}
	}
	r.log.Warn().Str("data", data).Int64("tg_id", tgID).Msg("unrouted callback")
}

func (r *RealBotAdapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	tgID := msg.From.ID
	ctx = logging.WithTgID(ctx, tgID)

	if msg.IsCommand() {
		cmd := msg.Command()
		fn, ok := r.cmdRoutes[cmd]
		if !ok {
			r.deliver(ctx, tgID, r.facade.HandleUnknown(ctx, tgID))
			return
		}
		if !r.allow(ctx, tgID, cmd) {
			r.deliver(ctx, tgID, &application.Reply{Text: "Slow down a little and try again in a minute. ⏳"})
			return
		}
		r.deliver(ctx, tgID, fn(ctx, msg))
		return
	}

	// Plain text: only meaningful inside the donation flow.
	if reply, handled := r.facade.HandleDonationText(ctx, tgID, msg.Text); handled {
		r.deliver(ctx, tgID, reply)
		return
	}
	r.deliver(ctx, tgID, r.facade.HandleUnknown(ctx, tgID))
}

// allow is a best-effort gate: limiter outages never block users.
func (r *RealBotAdapter) allow(ctx context.Context, tgID int64, cmd string) bool {
	if r.limiter == nil {
		return true
	}
	ok, err := r.limiter.Allow(ctx, redis.UserCommandKey(tgID, cmd), commandRateLimit, commandRateWindow)
	if err != nil {
		r.log.Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	return ok
}

func (r *RealBotAdapter) deliver(ctx context.Context, tgID int64, reply *application.Reply) {
	if reply == nil {
		return
	}
	var err error
	switch {
	case reply.Invoice != nil:
		err = r.SendInvoice(ctx, *reply.Invoice)
	case len(reply.Buttons) > 0:
		err = r.SendButtons(ctx, tgID, reply.Text, reply.Buttons)
	default:
		err = r.SendMessage(ctx, tgID, reply.Text)
	}
	if err != nil {
		metrics.IncNotifyFailed()
		logging.With(ctx, r.log).Error().Err(err).Msg("deliver reply")
	}
}

// notifyAdmins broadcasts to every configured admin, best-effort.
func (r *RealBotAdapter) notifyAdmins(ctx context.Context, text string) {
	for _, id := range r.cfg.Bot.AdminIDs {
		if err := r.SendMessage(ctx, id, text); err != nil {
			metrics.IncNotifyFailed()
			logging.With(ctx, r.log).Warn().Err(err).Int64("admin_id", id).Msg("notify admin")
		}
	}
}
