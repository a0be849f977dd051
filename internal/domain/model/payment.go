package model

import "time"

// Payment records one confirmed charge reported by Telegram. ChargeID is
// provider-issued and unique: the second delivery of the same confirmation
// must not produce a second row.
type Payment struct {
	ID        int64
	UserID    int64
	ProductID *int64 // nil for donations
	Amount    int64
	Currency  string
	ChargeID  string
	Message   *string // donation message, if any
	Date      time.Time
	Refunded  bool
}

// ChargeEvent is the successful-payment callback as reported by the
// gateway, echoed invoice payload included.
type ChargeEvent struct {
	UserID      int64
	Username    string
	TotalAmount int64
	Currency    string
	ChargeID    string
	Payload     string
}
