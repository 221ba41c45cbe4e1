package user

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSupport  Role = "support"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSupport, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanEditBookings reports whether the role may take the support lock.
func (r Role) CanEditBookings() bool {
	return r == RoleSupport || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
