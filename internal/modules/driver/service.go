// README: Driver availability registry: lazy record creation and the online flag.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"omaga/internal/types"
)

var (
	ErrNotFound        = errors.New("driver record not found")
	ErrBadAvailability = errors.New("availability must be online or offline")
)

type Store interface {
	GetByID(ctx context.Context, id types.ID) (*Record, error)
	GetByUserID(ctx context.Context, userID types.ID) (*Record, error)
	Create(ctx context.Context, r *Record) error
	SetStatus(ctx context.Context, id types.ID, status Availability) error
	ListOnline(ctx context.Context) ([]OnlineDriver, error)
}

// OnlineSet mirrors the availability flag for fast membership checks. It is a
// mirror, not the source of truth; every toggle rewrites both.
type OnlineSet interface {
	Add(ctx context.Context, id types.ID) error
	Remove(ctx context.Context, id types.ID) error
	Contains(ctx context.Context, id types.ID) (bool, error)
}

type Service struct {
	store  Store
	online OnlineSet
}

func NewService(store Store, online OnlineSet) *Service {
	return &Service{store: store, online: online}
}

// EnsureRecord returns the driver record for a user, creating an offline one
// on first access. Mirrors the dashboard's lazy bootstrap.
func (s *Service) EnsureRecord(ctx context.Context, userID types.ID) (*Record, error) {
	r, err := s.store.GetByUserID(ctx, userID)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	r = &Record{
		ID:        types.ID(uuid.NewString()),
		UserID:    userID,
		Status:    Offline,
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// SetAvailability toggles the flag. Last write wins; nothing locks the flag
// against a concurrent accept reading it.
func (s *Service) SetAvailability(ctx context.Context, userID types.ID, status Availability) (*Record, error) {
	if !status.Valid() {
		return nil, ErrBadAvailability
	}
	r, err := s.EnsureRecord(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetStatus(ctx, r.ID, status); err != nil {
		return nil, err
	}
	if status == Online {
		err = s.online.Add(ctx, r.ID)
	} else {
		err = s.online.Remove(ctx, r.ID)
	}
	if err != nil {
		return nil, err
	}
	r.Status = status
	return r, nil
}

// IsOnline answers the accept precondition from the mirrored set, falling
// back to the database row on a miss so a flushed mirror does not read every
// driver as offline. A DB hit re-seeds the mirror.
func (s *Service) IsOnline(ctx context.Context, driverID types.ID) (bool, error) {
	ok, err := s.online.Contains(ctx, driverID)
	if err != nil || ok {
		return ok, err
	}
	r, err := s.store.GetByID(ctx, driverID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if r.Status != Online {
		return false, nil
	}
	_ = s.online.Add(ctx, driverID)
	return true, nil
}

func (s *Service) ListOnline(ctx context.Context) ([]OnlineDriver, error) {
	return s.store.ListOnline(ctx)
}
