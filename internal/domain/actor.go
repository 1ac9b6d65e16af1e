package domain

// Actor is the authenticated caller of an operation.
type Actor struct {
	AccountID string
	Role      Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// RequireAdmin returns ErrAdminOnly unless the actor is an administrator.
func (a Actor) RequireAdmin() error {
	if !a.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
