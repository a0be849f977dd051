package repository

import (
	"context"

	"telegram-stars-store/internal/domain/model"
)

// ProductRepository is the port for catalog persistence. The payment core
// only ever reads it; mutation belongs to the admin command surface.
type ProductRepository interface {
	Save(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, qx Tx, id int64) (*model.Product, error)
	FindActiveByID(ctx context.Context, qx Tx, id int64) (*model.Product, error)
	ListActive(ctx context.Context, limit int) ([]*model.Product, error)
	ListAll(ctx context.Context) ([]*model.Product, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
