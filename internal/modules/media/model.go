// README: Media shapes: uploaded order image records.
package media

import (
	"time"

	"omaga/internal/types"
)

type OrderImage struct {
	ID        types.ID
	OrderID   types.ID
	UserID    types.ID
	URL       string
	CreatedAt time.Time
}
