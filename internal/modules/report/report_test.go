// README: Report service tests over an in-memory store.
package report

import (
	"context"
	"sync"
	"testing"

	"omaga/internal/modules/order"
	"omaga/internal/types"
)

// memOrders is a stub order book keyed by order id.
type memOrders struct {
	owners map[types.ID]types.ID // order id -> customer id
}

func (m *memOrders) Get(_ context.Context, id types.ID) (*order.Order, error) {
	owner, ok := m.owners[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return &order.Order{ID: id, CustomerID: owner}, nil
}

func ordersOf(pairs ...types.ID) *memOrders {
	m := &memOrders{owners: make(map[types.ID]types.ID)}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.owners[pairs[i]] = pairs[i+1]
	}
	return m
}

type memStore struct {
	mu      sync.Mutex
	reports map[types.ID]*AdminReport
}

func newMemStore() *memStore {
	return &memStore{reports: make(map[types.ID]*AdminReport)}
}

func (m *memStore) Create(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := "Reporter " + string(r.UserID)
	m.reports[r.ID] = &AdminReport{Report: *r, ReporterName: &name, PickupAddr: "A", DestAddr: "B"}
	return nil
}

func (m *memStore) List(_ context.Context) ([]AdminReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []AdminReport
	for _, r := range m.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) Resolve(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return ErrNotFound
	}
	r.Resolved = true
	return nil
}

func TestCreateRejectsEmptyMessage(t *testing.T) {
	svc := NewService(newMemStore(), ordersOf("o1", "u1"))
	ctx := context.Background()

	cases := []CreateCommand{
		{OrderID: "o1", UserID: "u1", Message: ""},
		{OrderID: "o1", UserID: "u1", Message: "   "},
		{OrderID: "", UserID: "u1", Message: "late pickup"},
		{OrderID: "o1", UserID: "", Message: "late pickup"},
	}
	for i, cmd := range cases {
		if _, err := svc.Create(ctx, cmd); err != ErrBadRequest {
			t.Errorf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestCreateRequiresOwnOrder(t *testing.T) {
	svc := NewService(newMemStore(), ordersOf("o1", "u1"))
	ctx := context.Background()

	// Unknown order.
	if _, err := svc.Create(ctx, CreateCommand{OrderID: "ghost", UserID: "u1", Message: "late pickup"}); err != ErrBadRequest {
		t.Fatalf("unknown order: expected ErrBadRequest, got %v", err)
	}
	// Someone else's order.
	if _, err := svc.Create(ctx, CreateCommand{OrderID: "o1", UserID: "u2", Message: "late pickup"}); err != ErrBadRequest {
		t.Fatalf("foreign order: expected ErrBadRequest, got %v", err)
	}
	// The requester's own order.
	if _, err := svc.Create(ctx, CreateCommand{OrderID: "o1", UserID: "u1", Message: "late pickup"}); err != nil {
		t.Fatalf("own order: %v", err)
	}
}

func TestAnonymousReportHidesName(t *testing.T) {
	svc := NewService(newMemStore(), ordersOf("o1", "u1", "o2", "u2"))
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateCommand{OrderID: "o1", UserID: "u1", Message: "driver detoured", IsAnonymous: true}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateCommand{OrderID: "o2", UserID: "u2", Message: "late pickup"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(list))
	}
	for _, r := range list {
		if r.IsAnonymous && r.ReporterName != nil {
			t.Fatalf("anonymous report leaked name %q", *r.ReporterName)
		}
		if !r.IsAnonymous && r.ReporterName == nil {
			t.Fatal("named report lost its reporter name")
		}
	}
}

func TestResolve(t *testing.T) {
	svc := NewService(newMemStore(), ordersOf("o1", "u1"))
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateCommand{OrderID: "o1", UserID: "u1", Message: "late pickup"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Resolve(ctx, r.ID); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	list, _ := svc.List(ctx)
	if !list[0].Resolved {
		t.Fatal("expected report to be resolved")
	}
	if err := svc.Resolve(ctx, "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
