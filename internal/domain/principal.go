package domain

// Role names declared by the application.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Principal is the resolved identity for the current request. The zero value
// is the anonymous principal with the empty role set.
type Principal struct {
	Name  string
	Roles []string
}

// Anonymous reports whether the principal carries no identity.
func (p Principal) Anonymous() bool {
	return p.Name == ""
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// SessionRecord binds a browser session to a previously authenticated
// principal. Lifecycle is owned by the session store, not the gateway.
type SessionRecord struct {
	Principal Principal `json:"principal"`
}
