// README: Admin reporting shapes: overview stats and joined listings.
package admin

import (
	"time"

	"omaga/internal/types"
)

// OverviewStats mirrors the admin dashboard aggregate.
type OverviewStats struct {
	TotalUsers      int64
	TotalDrivers    int64
	ActiveDrivers   int64
	TotalOrders     int64
	CompletedOrders int64
	PendingOrders   int64
}

type UserSummary struct {
	ID        types.ID
	Email     string
	Name      string
	WaNumber  string
	Role      types.Role
	CreatedAt time.Time
}

// OrderSummary is the admin order listing: the order row joined with the
// customer's and (when assigned) the driver's names.
type OrderSummary struct {
	ID           types.ID
	Kind         string
	PickupAddr   string
	DestAddr     string
	Status       string
	CustomerName string
	DriverName   *string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}
