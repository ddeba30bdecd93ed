// README: Trip report (complaint) tied to one order and one requester.
package report

import (
	"time"

	"omaga/internal/types"
)

type Report struct {
	ID          types.ID
	OrderID     types.ID
	UserID      types.ID
	Message     string
	IsAnonymous bool
	Resolved    bool
	CreatedAt   time.Time
}

// AdminReport is the row shape of the admin listing: the report joined with
// reporter name and the order's addresses. ReporterName is nil for anonymous
// reports after the service applies the display policy.
type AdminReport struct {
	Report
	ReporterName *string
	PickupAddr   string
	DestAddr     string
}
