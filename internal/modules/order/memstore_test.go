// README: In-memory Store used by the service tests; guards mirror the SQL ones.
package order

import (
	"context"
	"sync"
	"time"

	"omaga/internal/types"
)

type memStore struct {
	mu     sync.Mutex
	orders map[types.ID]*Order
	events []Event
}

func newMemStore() *memStore {
	return &memStore{orders: make(map[types.ID]*Order)}
}

func (m *memStore) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id types.ID) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memStore) Assign(_ context.Context, id, driverID types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != StatusPending || o.DriverID != nil {
		return false, nil
	}
	d := driverID
	o.DriverID = &d
	o.Status = StatusAccepted
	return true, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, setCompleted bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	if setCompleted {
		now := time.Now()
		o.CompletedAt = &now
	}
	return true, nil
}

func (m *memStore) ListByCustomer(_ context.Context, customerID types.ID) ([]CustomerOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []CustomerOrder
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			out = append(out, CustomerOrder{Order: *o})
		}
	}
	return out, nil
}

func (m *memStore) ListByDriver(_ context.Context, driverID types.ID) ([]DriverOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []DriverOrder
	for _, o := range m.orders {
		if (o.DriverID != nil && *o.DriverID == driverID) || o.Status == StatusPending {
			out = append(out, DriverOrder{Order: *o})
		}
	}
	return out, nil
}

func (m *memStore) AppendEvent(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

// stubAvailability marks every listed driver online.
type stubAvailability struct {
	mu     sync.Mutex
	online map[types.ID]bool
}

func availabilityOf(ids ...types.ID) *stubAvailability {
	s := &stubAvailability{online: make(map[types.ID]bool)}
	for _, id := range ids {
		s.online[id] = true
	}
	return s
}

func (s *stubAvailability) IsOnline(_ context.Context, driverID types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online[driverID], nil
}

type captureNotifier struct {
	mu      sync.Mutex
	created []types.ID
}

func (n *captureNotifier) OrderCreated(o *Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, o.ID)
}
