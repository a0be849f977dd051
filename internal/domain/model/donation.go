package model

import "time"

// PendingDonation stages a donation between invoice issuance and payment
// confirmation. The row carries the optional supporter message that the
// confirmation handler copies onto the payment. A row left behind by an
// abandoned checkout is harmless and reaped after a TTL.
type PendingDonation struct {
	ID        int64
	UserID    int64
	Amount    int64
	Message   *string
	CreatedAt time.Time
}
