package domain

// User roles.
const (
	RoleCustomer = "customer"
	RoleAuthor   = "author"
	RoleAdmin    = "admin"
)

// User is the cached backend user record. It is a display/capability cache
// only; the backend re-authorizes every call from the bearer token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DashboardPath returns the dashboard page for the user's role, or "" when
// the role has none.
func (u *User) DashboardPath() string {
	if u == nil {
		return ""
	}
	switch u.Role {
	case RoleCustomer:
		return "/dashboard/customer"
	case RoleAuthor:
		return "/dashboard/author"
	case RoleAdmin:
		return "/dashboard/admin"
	default:
		return ""
	}
}
