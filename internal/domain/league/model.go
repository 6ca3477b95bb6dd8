package league

import (
	"fmt"
	"time"
)

// League is a competition container owned by an organizer. Seasons run under
// a league; teams join a league through the request workflow or, when
// AutoApprove is set, directly.
type League struct {
	ID                   string
	Name                 string
	Sport                string
	CreatedBy            string
	Active               bool
	Public               bool
	AutoApprove          bool
	MaxTeams             *int
	RegistrationDeadline *time.Time
	CreatedAt            time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.CreatedBy == "" {
		return fmt.Errorf("league created_by is required")
	}
	if l.MaxTeams != nil && *l.MaxTeams <= 0 {
		return fmt.Errorf("league max_teams must be positive")
	}

	return nil
}

// DeadlinePassed reports whether the registration deadline is set and behind
// the given instant.
func (l League) DeadlinePassed(now time.Time) bool {
	return l.RegistrationDeadline != nil && l.RegistrationDeadline.Before(now)
}
