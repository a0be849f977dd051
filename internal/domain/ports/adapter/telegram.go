// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// InvoiceRequest describes one payment request handed to the gateway.
// Payload is the opaque correlation string echoed back on confirmation.
type InvoiceRequest struct {
	UserID      int64
	Title       string
	Description string
	Payload     string
	Currency    string
	Amount      int64
}

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
	// SendInvoice submits the payment request and returns once the gateway
	// has accepted it for delivery; it never waits for the payment itself.
	SendInvoice(ctx context.Context, req InvoiceRequest) error
}
