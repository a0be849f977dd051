// File: internal/infra/web/mock_test.go
package web

import (
	"context"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/usecase"
)

type mockStatsUC struct {
	stats *usecase.Stats
	err   error
}

func (m *mockStatsUC) Snapshot(ctx context.Context) (*usecase.Stats, error) {
	return m.stats, m.err
}

type mockCatalogUC struct {
	products []*model.Product
	created  *model.Product
}

func (m *mockCatalogUC) ActiveProducts(ctx context.Context, limit int) ([]*model.Product, error) {
	return m.products, nil
}

func (m *mockCatalogUC) AllProducts(ctx context.Context) ([]*model.Product, error) {
	return m.products, nil
}

func (m *mockCatalogUC) Get(ctx context.Context, id int64) (*model.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogUC) Create(ctx context.Context, title, description string, amount int64, currency string, durationDays int) (*model.Product, error) {
	p, err := model.NewProduct(title, description, amount, currency, durationDays)
	if err != nil {
		return nil, err
	}
	p.ID = int64(len(m.products) + 1)
	m.created = p
	return p, nil
}

func (m *mockCatalogUC) Update(ctx context.Context, id int64, title, description string, amount int64, durationDays int) (*model.Product, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCatalogUC) SetActive(ctx context.Context, id int64, active bool) error { return nil }

func (m *mockCatalogUC) Delete(ctx context.Context, id int64) error { return nil }

type mockRefundUC struct {
	recs []*model.RefundRecord
}

func (m *mockRefundUC) Mark(ctx context.Context, chargeID string, adminID int64, reason string) (*model.Payment, error) {
	return nil, domain.ErrNotFound
}

func (m *mockRefundUC) History(ctx context.Context, limit int) ([]*model.RefundRecord, error) {
	if limit > 0 && len(m.recs) > limit {
		return m.recs[:limit], nil
	}
	return m.recs, nil
}

var (
	_ usecase.StatsUseCase   = (*mockStatsUC)(nil)
	_ usecase.CatalogUseCase = (*mockCatalogUC)(nil)
	_ usecase.RefundUseCase  = (*mockRefundUC)(nil)
)
