package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/packdash/backend-go/internal/domain"
	"github.com/packdash/backend-go/internal/storage"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type memClients struct {
	mu      sync.Mutex
	clients []domain.Client
}

func (m *memClients) List(context.Context) ([]domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Client(nil), m.clients...), nil
}

func (m *memClients) Get(_ context.Context, id string) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memClients) Create(_ context.Context, c *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = append(m.clients, *c)
	return nil
}

func (m *memClients) Update(_ context.Context, c *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clients {
		if m.clients[i].ID == c.ID {
			m.clients[i] = *c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memClients) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.clients {
		if m.clients[i].ID == id {
			m.clients = append(m.clients[:i], m.clients[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memOrders struct {
	mu     sync.Mutex
	orders []domain.Order
}

func (m *memOrders) sorted(keep func(domain.Order) bool) []domain.Order {
	out := make([]domain.Order, 0)
	for _, o := range m.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].WeekNumber > out[j].WeekNumber
	})
	return out
}

func (m *memOrders) List(context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(domain.Order) bool { return true }), nil
}

func (m *memOrders) ListByClient(_ context.Context, clientID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(o domain.Order) bool { return o.ClientID == clientID }), nil
}

func (m *memOrders) Get(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memOrders) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memOrders) Update(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == o.ID {
			m.orders[i] = *o
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memOrders) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// countingCache never hits and records invalidations.
type countingCache struct {
	mu          sync.Mutex
	sets        int
	invalidated int
}

func (c *countingCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (c *countingCache) Set(context.Context, string, any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	return nil
}

func (c *countingCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) ListObjects(_ context.Context, prefix string) ([]storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.ObjectInfo, 0)
	for k, v := range m.objects {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			out = append(out, storage.ObjectInfo{Key: k, Size: int64(len(v))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *memStorage) DownloadObject(context.Context, string, string) error {
	return nil
}

func (m *memStorage) UploadObject(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}
