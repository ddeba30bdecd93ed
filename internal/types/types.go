// README: Shared identifier and role types used across modules.
package types

type ID string

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDriver, RoleCustomer:
		return true
	}
	return false
}
