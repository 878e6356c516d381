package models

// Actor is the authenticated caller as seen by the service layer. A nil
// *Actor is an anonymous request.
type Actor struct {
	ID       uint
	Username string
	Role     UserRole
}

func (a *Actor) Authenticated() bool {
	return a != nil && a.ID != 0
}

func (a *Actor) IsAdmin() bool {
	return a.Authenticated() && a.Role == RoleAdmin
}

func (a *Actor) Owns(userID uint) bool {
	return a.Authenticated() && a.ID == userID
}
