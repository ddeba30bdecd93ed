// README: Order service implements actor-gated state transitions and persistence.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"omaga/internal/types"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrBadRequest        = errors.New("bad request")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAlreadyAssigned   = errors.New("order already has a driver")
	ErrDriverOffline     = errors.New("driver is offline")
	ErrNotAssigned       = errors.New("caller is not the assigned driver")
)

// Store is the persistence contract for orders. Assign and UpdateStatus are
// conditional single-row writes; they report false when the guard did not
// match, which is how a racing writer loses.
type Store interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	Assign(ctx context.Context, id, driverID types.ID) (bool, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, setCompleted bool) (bool, error)
	ListByCustomer(ctx context.Context, customerID types.ID) ([]CustomerOrder, error)
	ListByDriver(ctx context.Context, driverID types.ID) ([]DriverOrder, error)
	AppendEvent(ctx context.Context, e *Event) error
}

// Availability is the read-only view of the driver registry consumed by the
// accept precondition. It is read, not locked.
type Availability interface {
	IsOnline(ctx context.Context, driverID types.ID) (bool, error)
}

// Notifier receives fire-and-forget order notifications. May be nil.
type Notifier interface {
	OrderCreated(o *Order)
}

type Service struct {
	store    Store
	drivers  Availability
	notifier Notifier
}

func NewService(store Store, drivers Availability, notifier Notifier) *Service {
	return &Service{store: store, drivers: drivers, notifier: notifier}
}

type CreateCommand struct {
	CustomerID        types.ID
	Kind              Kind
	PickupAddr        string
	DestAddr          string
	Notes             string
	PreferredDriverID *types.ID
}

type AcceptCommand struct {
	OrderID  types.ID
	DriverID types.ID
}

type StartCommand struct {
	OrderID  types.ID
	DriverID types.ID
}

type CompleteCommand struct {
	OrderID  types.ID
	DriverID types.ID
}

type CancelCommand struct {
	OrderID  types.ID
	DriverID types.ID
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	if cmd.CustomerID == "" || cmd.PickupAddr == "" || cmd.DestAddr == "" || !cmd.Kind.Valid() {
		return nil, ErrBadRequest
	}
	o := &Order{
		ID:                types.ID(uuid.NewString()),
		CustomerID:        cmd.CustomerID,
		PreferredDriverID: cmd.PreferredDriverID,
		Kind:              cmd.Kind,
		PickupAddr:        cmd.PickupAddr,
		DestAddr:          cmd.DestAddr,
		Notes:             cmd.Notes,
		Status:            StatusPending,
		CreatedAt:         time.Now(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:   o.ID,
		From:      StatusNone,
		To:        StatusPending,
		ActorRole: types.RoleCustomer,
		ActorID:   &cmd.CustomerID,
		CreatedAt: o.CreatedAt,
	})
	if s.notifier != nil && o.PreferredDriverID != nil {
		s.notifier.OrderCreated(o)
	}
	return o, nil
}

// Accept assigns the order to the driver. First write wins: the winner is
// decided by a conditional update on status=pending AND driver IS NULL.
func (s *Service) Accept(ctx context.Context, cmd AcceptCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if o.DriverID != nil {
		return ErrAlreadyAssigned
	}
	if !CanTransition(o.Status, StatusAccepted) {
		return ErrInvalidTransition
	}
	online, err := s.drivers.IsOnline(ctx, cmd.DriverID)
	if err != nil {
		return err
	}
	if !online {
		return ErrDriverOffline
	}
	ok, err := s.store.Assign(ctx, o.ID, cmd.DriverID)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race; report what the row looks like now.
		cur, err := s.store.Get(ctx, cmd.OrderID)
		if err == nil && cur.DriverID != nil {
			return ErrAlreadyAssigned
		}
		return ErrInvalidTransition
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:   o.ID,
		From:      StatusPending,
		To:        StatusAccepted,
		ActorRole: types.RoleDriver,
		ActorID:   &cmd.DriverID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *Service) Start(ctx context.Context, cmd StartCommand) error {
	return s.transitionByDriver(ctx, cmd.OrderID, cmd.DriverID, StatusInProgress, false)
}

func (s *Service) Complete(ctx context.Context, cmd CompleteCommand) error {
	return s.transitionByDriver(ctx, cmd.OrderID, cmd.DriverID, StatusCompleted, true)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	return s.transitionByDriver(ctx, cmd.OrderID, cmd.DriverID, StatusCancelled, true)
}

// transitionByDriver is the shared path for start/complete/cancel: the caller
// must be the assigned driver and the edge must be in the transition table.
func (s *Service) transitionByDriver(ctx context.Context, orderID, driverID types.ID, to Status, setCompleted bool) error {
	o, err := s.store.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if o.DriverID == nil || *o.DriverID != driverID {
		return ErrNotAssigned
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, to, setCompleted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:   o.ID,
		From:      o.Status,
		To:        to,
		ActorRole: types.RoleDriver,
		ActorID:   &driverID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID types.ID) ([]CustomerOrder, error) {
	return s.store.ListByCustomer(ctx, customerID)
}

// ListByDriver returns the driver's orders split into active work and history,
// the shape the driver dashboard consumes.
func (s *Service) ListByDriver(ctx context.Context, driverID types.ID) (active, history []DriverOrder, err error) {
	all, err := s.store.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, nil, err
	}
	for _, o := range all {
		if o.Status.Terminal() {
			history = append(history, o)
		} else {
			active = append(active, o)
		}
	}
	return active, history, nil
}
