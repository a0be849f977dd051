package model

import "telegram-stars-store/internal/domain"

// Product is a purchasable catalog entry. Amount is the price in the
// smallest currency unit (1 = 1 XTR for Telegram Stars). A DurationDays
// of zero means the product grants no time-boxed entitlement.
type Product struct {
	ID           int64
	Title        string
	Description  string
	Amount       int64
	Currency     string
	DurationDays int
	Active       bool
}

// NewProduct validates and constructs a product.
func NewProduct(title, description string, amount int64, currency string, durationDays int) (*Product, error) {
	if title == "" || amount <= 0 || currency == "" || durationDays < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Product{
		Title:        title,
		Description:  description,
		Amount:       amount,
		Currency:     currency,
		DurationDays: durationDays,
		Active:       true,
	}, nil
}

func (p *Product) IsZero() bool { return p == nil || p.ID == 0 }

// GrantsEntitlement reports whether buying this product should create a
// subscription row.
func (p *Product) GrantsEntitlement() bool {
	return p != nil && p.Active && p.DurationDays > 0
}
