package domain

import "time"

// Settlement is an immutable snapshot of the transfers needed to fully
// settle a group at a point in time. Once created it is never mutated or
// deleted; later settlements subtract earlier ones from the balance view
// instead of rewriting history.
type Settlement struct {
	ID        string
	GroupID   string
	Entries   []Transfer
	SettledAt time.Time
}

// Validate checks settlement invariants.
func (s *Settlement) Validate() error {
	if s.GroupID == "" {
		return ErrMissingField
	}

	for i := range s.Entries {
		if err := s.Entries[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
