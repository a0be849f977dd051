// File: internal/usecase/catalog_uc.go
package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CatalogUseCase manages the product catalog. Only the admin command
// surface mutates it; the payment core is a reader.
type CatalogUseCase interface {
	ActiveProducts(ctx context.Context, limit int) ([]*model.Product, error)
	AllProducts(ctx context.Context) ([]*model.Product, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, title, description string, amount int64, currency string, durationDays int) (*model.Product, error)
	Update(ctx context.Context, id int64, title, description string, amount int64, durationDays int) (*model.Product, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type catalogUC struct {
	products repository.ProductRepository
	log      *zerolog.Logger
}

func NewCatalogUseCase(products repository.ProductRepository, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{products: products, log: logger}
}

func (u *catalogUC) ActiveProducts(ctx context.Context, limit int) ([]*model.Product, error) {
	return u.products.ListActive(ctx, limit)
}

func (u *catalogUC) AllProducts(ctx context.Context) ([]*model.Product, error) {
	return u.products.ListAll(ctx)
}

func (u *catalogUC) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.FindByID(ctx, repository.NoTX, id)
}

func (u *catalogUC) Create(ctx context.Context, title, description string, amount int64, currency string, durationDays int) (*model.Product, error) {
	p, err := model.NewProduct(title, description, amount, currency, durationDays)
	if err != nil {
		return nil, err
	}
	if err := u.products.Save(ctx, p); err != nil {
		return nil, err
	}
	u.log.Info().Int64("product_id", p.ID).Str("title", p.Title).Msg("product created")
	return p, nil
}

func (u *catalogUC) Update(ctx context.Context, id int64, title, description string, amount int64, durationDays int) (*model.Product, error) {
	p, err := u.products.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if title == "" || amount <= 0 || durationDays < 0 {
		return nil, domain.ErrInvalidArgument
	}
	p.Title = title
	p.Description = description
	p.Amount = amount
	p.DurationDays = durationDays
	if err := u.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *catalogUC) SetActive(ctx context.Context, id int64, active bool) error {
	return u.products.SetActive(ctx, id, active)
}

func (u *catalogUC) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}
