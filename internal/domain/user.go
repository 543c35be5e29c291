package domain

import "time"

// User represents a registered member of the system.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

// Validate checks required user fields.
func (u *User) Validate() error {
	if u.Name == "" || u.Email == "" {
		return ErrMissingField
	}

	return nil
}

// Group is a set of users sharing expenses.
type Group struct {
	ID        string
	Name      string
	MemberIDs []string
	CreatedAt time.Time
}

// Validate checks required group fields.
func (g *Group) Validate() error {
	if g.Name == "" {
		return ErrMissingField
	}

	return nil
}
