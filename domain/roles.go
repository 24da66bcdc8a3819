package domain

// Role determines which area of the application a session may enter.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleCustomer:
		return true
	}
	return false
}

// HomePath is the single redirect table used by guards and by the
// post-login/register handlers, so the two can never diverge. Anything that
// is not admin or seller lands in the customer area.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleSeller:
		return "/seller"
	default:
		return "/customer"
	}
}
