package model

import (
	"fmt"
	"strconv"
	"strings"
)

// CorrelationKind tags the decoded invoice payload.
type CorrelationKind string

const (
	CorrelationProduct  CorrelationKind = "product"
	CorrelationDonation CorrelationKind = "donation"
	CorrelationUnknown  CorrelationKind = "unknown"
)

// Correlation links an invoice to its confirmation. The payload string is
// opaque to the gateway and round-tripped verbatim; it is decoded exactly
// once, at the confirmation boundary. An unrecognized payload is not an
// error: the payment is then recorded without a product or donation link.
type Correlation struct {
	Kind      CorrelationKind
	ProductID int64 // set when Kind == CorrelationProduct
	PendingID int64 // set when Kind == CorrelationDonation
}

// ProductPayload encodes the invoice payload for a product purchase.
func ProductPayload(productID int64) string {
	return fmt.Sprintf("product:%d", productID)
}

// DonationPayload encodes the invoice payload for a staged donation.
func DonationPayload(pendingID int64) string {
	return fmt.Sprintf("donation:%d", pendingID)
}

// ParseCorrelation decodes an invoice payload. Anything that is not a
// well-formed product or donation reference decodes to CorrelationUnknown.
func ParseCorrelation(payload string) Correlation {
	kind, rest, ok := strings.Cut(payload, ":")
	if !ok {
		return Correlation{Kind: CorrelationUnknown}
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return Correlation{Kind: CorrelationUnknown}
	}
	switch kind {
	case "product":
		return Correlation{Kind: CorrelationProduct, ProductID: id}
	case "donation":
		return Correlation{Kind: CorrelationDonation, PendingID: id}
	default:
		return Correlation{Kind: CorrelationUnknown}
	}
}
