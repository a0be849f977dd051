package repository

import "context"

// DonationStep defines the steps of the donation conversation.
type DonationStep string

const (
	StepAwaitingMessage      DonationStep = "awaiting_message"
	StepAwaitingAmount       DonationStep = "awaiting_amount"
	StepAwaitingCustomAmount DonationStep = "awaiting_custom_amount"
)

// ConversationState holds one user's progress through the donation flow.
// It is keyed by Telegram id, so concurrent sessions never share state.
type ConversationState struct {
	Step    DonationStep `json:"step"`
	Message string       `json:"message"` // accumulated supporter message
	HasMsg  bool         `json:"has_msg"` // distinguishes "" from skipped
}

// StateRepository is the port for the per-user conversational state, with a
// store-side expiry so abandoned flows clear themselves.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}
