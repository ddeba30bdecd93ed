// README: Availability registry tests over in-memory doubles.
package driver

import (
	"context"
	"sync"
	"testing"

	"omaga/internal/types"
)

type memStore struct {
	mu      sync.Mutex
	records map[types.ID]*Record // keyed by user id
}

func newMemStore() *memStore {
	return &memStore{records: make(map[types.ID]*Record)}
}

func (m *memStore) GetByID(_ context.Context, id types.ID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GetByUserID(_ context.Context, userID types.ID) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.records[r.UserID] = &cp
	return nil
}

func (m *memStore) SetStatus(_ context.Context, id types.ID, status Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) ListOnline(_ context.Context) ([]OnlineDriver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []OnlineDriver
	for _, r := range m.records {
		if r.Status == Online {
			out = append(out, OnlineDriver{ID: r.ID, UserID: r.UserID})
		}
	}
	return out, nil
}

type memOnlineSet struct {
	mu  sync.Mutex
	ids map[types.ID]bool
}

func newMemOnlineSet() *memOnlineSet {
	return &memOnlineSet{ids: make(map[types.ID]bool)}
}

func (m *memOnlineSet) Add(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = true
	return nil
}

func (m *memOnlineSet) Remove(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ids, id)
	return nil
}

func (m *memOnlineSet) Contains(_ context.Context, id types.ID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[id], nil
}

func TestEnsureRecordLazyCreate(t *testing.T) {
	svc := NewService(newMemStore(), newMemOnlineSet())
	ctx := context.Background()

	r, err := svc.EnsureRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if r.Status != Offline {
		t.Fatalf("new record must start offline, got %s", r.Status)
	}

	again, err := svc.EnsureRecord(ctx, "u1")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if again.ID != r.ID {
		t.Fatalf("second ensure created a new record: %s vs %s", again.ID, r.ID)
	}
}

func TestSetAvailabilityMirrorsSet(t *testing.T) {
	set := newMemOnlineSet()
	svc := NewService(newMemStore(), set)
	ctx := context.Background()

	r, err := svc.SetAvailability(ctx, "u1", Online)
	if err != nil {
		t.Fatalf("set online: %v", err)
	}
	if ok, _ := svc.IsOnline(ctx, r.ID); !ok {
		t.Fatal("expected driver online after toggle")
	}

	if _, err := svc.SetAvailability(ctx, "u1", Offline); err != nil {
		t.Fatalf("set offline: %v", err)
	}
	if ok, _ := svc.IsOnline(ctx, r.ID); ok {
		t.Fatal("expected driver offline after toggle")
	}
}

func TestSetAvailabilityRejectsUnknownValue(t *testing.T) {
	svc := NewService(newMemStore(), newMemOnlineSet())
	if _, err := svc.SetAvailability(context.Background(), "u1", "busy"); err != ErrBadAvailability {
		t.Fatalf("expected ErrBadAvailability, got %v", err)
	}
}

func TestIsOnlineSurvivesMirrorFlush(t *testing.T) {
	set := newMemOnlineSet()
	svc := NewService(newMemStore(), set)
	ctx := context.Background()

	r, err := svc.SetAvailability(ctx, "u1", Online)
	if err != nil {
		t.Fatalf("set online: %v", err)
	}

	// Simulate a flushed mirror: membership gone, the DB row still online.
	set.mu.Lock()
	set.ids = map[types.ID]bool{}
	set.mu.Unlock()

	ok, err := svc.IsOnline(ctx, r.ID)
	if err != nil {
		t.Fatalf("is online: %v", err)
	}
	if !ok {
		t.Fatal("online driver must survive a mirror flush")
	}
	if ok, _ := set.Contains(ctx, r.ID); !ok {
		t.Fatal("fallback hit must re-seed the mirror")
	}
}

func TestIsOnlineUnknownDriver(t *testing.T) {
	svc := NewService(newMemStore(), newMemOnlineSet())
	ok, err := svc.IsOnline(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("is online: %v", err)
	}
	if ok {
		t.Fatal("unknown driver must read as offline")
	}
}
