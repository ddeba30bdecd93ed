// README: Report service: create, admin listing with anonymization, resolve.
package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"omaga/internal/modules/order"
	"omaga/internal/types"
)

var (
	ErrNotFound   = errors.New("report not found")
	ErrBadRequest = errors.New("bad request")
)

type Store interface {
	Create(ctx context.Context, r *Report) error
	List(ctx context.Context) ([]AdminReport, error)
	Resolve(ctx context.Context, id types.ID) error
}

// Orders is the read-only view of the order book used to validate that a
// report names a real order filed by its own requester.
type Orders interface {
	Get(ctx context.Context, id types.ID) (*order.Order, error)
}

type Service struct {
	store  Store
	orders Orders
}

func NewService(store Store, orders Orders) *Service {
	return &Service{store: store, orders: orders}
}

type CreateCommand struct {
	OrderID     types.ID
	UserID      types.ID
	Message     string
	IsAnonymous bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Report, error) {
	msg := strings.TrimSpace(cmd.Message)
	if cmd.OrderID == "" || cmd.UserID == "" || msg == "" {
		return nil, ErrBadRequest
	}
	o, err := s.orders.Get(ctx, cmd.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, ErrBadRequest
		}
		return nil, err
	}
	if o.CustomerID != cmd.UserID {
		return nil, ErrBadRequest
	}
	r := &Report{
		ID:          types.ID(uuid.NewString()),
		OrderID:     cmd.OrderID,
		UserID:      cmd.UserID,
		Message:     msg,
		IsAnonymous: cmd.IsAnonymous,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns all reports for the admin view. Anonymous reports keep their
// row but drop the reporter's name.
func (s *Service) List(ctx context.Context) ([]AdminReport, error) {
	reports, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].IsAnonymous {
			reports[i].ReporterName = nil
		}
	}
	return reports, nil
}

func (s *Service) Resolve(ctx context.Context, id types.ID) error {
	return s.store.Resolve(ctx, id)
}
