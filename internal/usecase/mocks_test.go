// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"

	"telegram-stars-store/internal/domain"
	"telegram-stars-store/internal/domain/model"
	"telegram-stars-store/internal/domain/ports/repository"
)

// --- Transaction manager ---

// mockTxManager runs the callback without a real transaction; the in-memory
// repositories ignore qx anyway.
type mockTxManager struct {
	FailWith error
	Calls    int
}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, qx repository.Tx) error) error {
	m.Calls++
	if m.FailWith != nil {
		return m.FailWith
	}
	return fn(ctx, repository.NoTX)
}

// --- Product repository ---

type memProductRepo struct {
	mu      sync.Mutex
	seq     int64
	items   map[int64]*model.Product
	SaveErr error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: make(map[int64]*model.Product)}
}

func (r *memProductRepo) Save(ctx context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	} else if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, _ repository.Tx, id int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindActiveByID(ctx context.Context, qx repository.Tx, id int64) (*model.Product, error) {
	p, err := r.FindByID(ctx, qx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) ListActive(ctx context.Context, limit int) ([]*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Product
	for _, p := range r.items {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProductRepo) ListAll(ctx context.Context) ([]*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Product
	for _, p := range r.items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = active
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// --- Payment repository ---

type memPaymentRepo struct {
	mu        sync.Mutex
	seq       int64
	byCharge  map[string]*model.Payment
	InsertErr error
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{byCharge: make(map[string]*model.Payment)}
}

func (r *memPaymentRepo) Insert(ctx context.Context, _ repository.Tx, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.InsertErr != nil {
		return r.InsertErr
	}
	if _, ok := r.byCharge[p.ChargeID]; ok {
		return domain.ErrDuplicateCharge
	}
	r.seq++
	p.ID = r.seq
	cp := *p
	r.byCharge[p.ChargeID] = &cp
	return nil
}

func (r *memPaymentRepo) FindByChargeID(ctx context.Context, _ repository.Tx, chargeID string) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byCharge[chargeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPaymentRepo) MarkRefunded(ctx context.Context, _ repository.Tx, chargeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byCharge[chargeID]
	if !ok {
		return false, nil
	}
	p.Refunded = true
	return true, nil
}

func (r *memPaymentRepo) Totals(ctx context.Context, _ repository.Tx) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count, sum int64
	for _, p := range r.byCharge {
		count++
		sum += p.Amount
	}
	return count, sum, nil
}

// --- Subscription repository ---

type memSubscriptionRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []*model.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo { return &memSubscriptionRepo{} }

func (r *memSubscriptionRepo) Insert(ctx context.Context, _ repository.Tx, s *model.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.ID = r.seq
	cp := *s
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memSubscriptionRepo) FindLatestByUser(ctx context.Context, _ repository.Tx, userID int64) (*model.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			cp := *r.rows[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memSubscriptionRepo) CountActive(ctx context.Context, _ repository.Tx) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for _, s := range r.rows {
		if s.ExpiryDate.After(now) {
			n++
		}
	}
	return n, nil
}

// --- Pending donation repository ---

type memDonationRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]*model.PendingDonation
}

func newMemDonationRepo() *memDonationRepo {
	return &memDonationRepo{items: make(map[int64]*model.PendingDonation)}
}

func (r *memDonationRepo) Insert(ctx context.Context, _ repository.Tx, d *model.PendingDonation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = r.seq
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *memDonationRepo) FindByID(ctx context.Context, _ repository.Tx, id int64) (*model.PendingDonation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDonationRepo) Delete(ctx context.Context, _ repository.Tx, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memDonationRepo) DeleteOlderThan(ctx context.Context, _ repository.Tx, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.items {
		if d.CreatedAt.Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// --- Refund repository ---

type memRefundRepo struct {
	mu   sync.Mutex
	seq  int64
	rows []*model.RefundRecord
}

func newMemRefundRepo() *memRefundRepo { return &memRefundRepo{} }

func (r *memRefundRepo) Append(ctx context.Context, _ repository.Tx, rec *model.RefundRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	rec.ID = r.seq
	cp := *rec
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *memRefundRepo) ListRecent(ctx context.Context, _ repository.Tx, limit int) ([]*model.RefundRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.RefundRecord
	for i := len(r.rows) - 1; i >= 0; i-- {
		cp := *r.rows[i]
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Compile-time checks keep the mocks honest.
var (
	_ repository.TransactionManager        = (*mockTxManager)(nil)
	_ repository.ProductRepository         = (*memProductRepo)(nil)
	_ repository.PaymentRepository         = (*memPaymentRepo)(nil)
	_ repository.SubscriptionRepository    = (*memSubscriptionRepo)(nil)
	_ repository.PendingDonationRepository = (*memDonationRepo)(nil)
	_ repository.RefundRepository          = (*memRefundRepo)(nil)
)
