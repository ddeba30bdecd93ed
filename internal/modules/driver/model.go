// README: Driver availability record, one per driver-role user.
package driver

import (
	"time"

	"omaga/internal/types"
)

type Availability string

const (
	Online  Availability = "online"
	Offline Availability = "offline"
)

func (a Availability) Valid() bool {
	return a == Online || a == Offline
}

type Record struct {
	ID        types.ID
	UserID    types.ID
	Status    Availability
	CreatedAt time.Time
}

// OnlineDriver is the row shape of the online-driver listing: the record
// joined with the user's display fields.
type OnlineDriver struct {
	ID       types.ID
	UserID   types.ID
	Name     string
	WaNumber string
}
