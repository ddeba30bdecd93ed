// README: Order aggregate, status definitions, and the transition table.
package order

import (
	"time"

	"omaga/internal/types"
)

type Kind string

const (
	KindDelivery Kind = "delivery"
	KindRide     Kind = "ride"
)

func (k Kind) Valid() bool {
	return k == KindDelivery || k == KindRide
}

type Status string

const (
	StatusNone       Status = "none"
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID          types.ID
	CustomerID  types.ID
	DriverID    *types.ID
	// PreferredDriverID is the driver the customer picked at creation time.
	// It never assigns the order; assignment only happens through Accept.
	PreferredDriverID *types.ID
	Kind              Kind
	PickupAddr        string
	DestAddr          string
	Notes             string
	Status            Status
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

// Event is one row of the lifecycle audit trail.
type Event struct {
	ID        int64
	OrderID   types.ID
	From      Status
	To        Status
	ActorRole types.Role
	ActorID   *types.ID
	CreatedAt time.Time
}

// AllowedTransitions represents the order state flow (diagram) as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:    {StatusAccepted},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
