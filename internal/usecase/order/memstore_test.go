package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pesokrava/autospares/internal/domain"
)

// memStore is an in-memory domain.OrderRepository. Transactions are serialized
// and roll back every change when fn fails.
type memStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	orders   map[uuid.UUID]*domain.Order
	seqs     map[string]int
	txCount  int
}

func newMemStore(products ...*domain.Product) *memStore {
	m := &memStore{
		products: make(map[uuid.UUID]*domain.Product),
		orders:   make(map[uuid.UUID]*domain.Order),
		seqs:     make(map[string]int),
	}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func copyOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append(domain.OrderItems(nil), o.Items...)
	c.StatusHistory = append(domain.StatusHistory(nil), o.StatusHistory...)
	return &c
}

type memSnapshot struct {
	products map[uuid.UUID]domain.Product
	orders   map[uuid.UUID]*domain.Order
	seqs     map[string]int
}

func (m *memStore) snapshot() memSnapshot {
	s := memSnapshot{
		products: make(map[uuid.UUID]domain.Product, len(m.products)),
		orders:   make(map[uuid.UUID]*domain.Order, len(m.orders)),
		seqs:     make(map[string]int, len(m.seqs)),
	}
	for id, p := range m.products {
		s.products[id] = *p
	}
	for id, o := range m.orders {
		s.orders[id] = copyOrder(o)
	}
	for k, v := range m.seqs {
		s.seqs[k] = v
	}
	return s
}

func (m *memStore) restore(s memSnapshot) {
	for id, p := range s.products {
		restored := p
		m.products[id] = &restored
	}
	m.orders = s.orders
	m.seqs = s.seqs
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx domain.OrderTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.txCount++
	snap := m.snapshot()
	if err := fn(&memTx{m: m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

func (m *memStore) stock(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].StockQuantity
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyOrder(o), nil
}

func (m *memStore) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.OrderNumber == number {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) filtered(filter domain.OrderFilter) []*domain.Order {
	var out []*domain.Order
	for _, o := range m.orders {
		if filter.UserID != nil && (o.UserID == nil || *o.UserID != *filter.UserID) {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && o.PaymentStatus != filter.PaymentStatus {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber > out[j].OrderNumber })
	return out
}

func (m *memStore) List(ctx context.Context, filter domain.OrderFilter, limit, offset int) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(filter)
	if offset >= len(all) {
		return []*domain.Order{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memStore) Count(ctx context.Context, filter domain.OrderFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered(filter)), nil
}

func (m *memStore) DashboardStats(ctx context.Context, monthStart, weekStart time.Time) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}

// memTx runs with memStore.mu held
type memTx struct {
	m *memStore
}

func (t *memTx) GetProducts(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := t.m.products[id]; ok {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (t *memTx) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	p, ok := t.m.products[productID]
	if !ok || p.StockQuantity < quantity {
		return false, nil
	}
	p.StockQuantity -= quantity
	p.InStock = p.StockQuantity > 0
	return true, nil
}

func (t *memTx) RestoreStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	p, ok := t.m.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity += quantity
	p.InStock = p.StockQuantity > 0
	return nil
}

func (t *memTx) NextOrderSequence(ctx context.Context, dayPrefix string) (int, error) {
	t.m.seqs[dayPrefix]++
	return t.m.seqs[dayPrefix], nil
}

func (t *memTx) InsertOrder(ctx context.Context, o *domain.Order) error {
	for _, existing := range t.m.orders {
		if existing.OrderNumber == o.OrderNumber {
			return domain.ErrAlreadyExists
		}
	}
	o.ID = uuid.New()
	o.Version = 1
	o.CreatedAt = o.OrderDate
	o.UpdatedAt = o.OrderDate
	t.m.orders[o.ID] = copyOrder(o)
	return nil
}

func (t *memTx) find(match func(*domain.Order) bool) (*domain.Order, error) {
	for _, o := range t.m.orders {
		if match(o) {
			return copyOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *memTx) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return t.find(func(o *domain.Order) bool { return o.ID == id })
}

func (t *memTx) GetOrderByNumberForUpdate(ctx context.Context, number string) (*domain.Order, error) {
	return t.find(func(o *domain.Order) bool { return o.OrderNumber == number })
}

func (t *memTx) GetOrderByPaymentIntentForUpdate(ctx context.Context, intentID string) (*domain.Order, error) {
	return t.find(func(o *domain.Order) bool {
		return o.PaymentIntentID != nil && *o.PaymentIntentID == intentID
	})
}

func (t *memTx) UpdateOrder(ctx context.Context, o *domain.Order, appended ...domain.StatusHistoryEntry) error {
	stored, ok := t.m.orders[o.ID]
	if !ok || stored.Version != o.Version {
		return domain.ErrConflict
	}

	history := append(append(domain.StatusHistory(nil), stored.StatusHistory...), appended...)
	next := copyOrder(o)
	next.StatusHistory = history
	next.Version = stored.Version + 1
	t.m.orders[o.ID] = next

	o.Version = next.Version
	return nil
}
