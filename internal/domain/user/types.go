package user

type Role string

const (
	RoleParent Role = "parent"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleParent, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanProcessCheckins reports whether the role may approve or reject
// scanned check-in requests.
func (r Role) CanProcessCheckins() bool {
	return r == RoleStaff || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
