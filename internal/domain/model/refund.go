package model

import "time"

// RefundRecord is one entry of the append-only local refund journal. It
// acknowledges a manual refund marking; no money moves through us.
type RefundRecord struct {
	ID       int64
	ChargeID string
	AdminID  int64
	Reason   string
	Date     time.Time
}

// DefaultRefundReason is used when the admin gives no free-text reason.
const DefaultRefundReason = "Manual refund marked"
