// README: Principal model: an authenticated identity with a role.
package identity

import (
	"time"

	"omaga/internal/types"
)

type User struct {
	ID                types.ID
	Email             string
	Name              string
	WaNumber          string
	Role              types.Role
	ProfilePictureURL *string
	PasswordHash      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProfileUpdate carries the optional fields of a partial profile edit.
type ProfileUpdate struct {
	Name              *string
	WaNumber          *string
	ProfilePictureURL *string
}
