package registration

import (
	"errors"
	"fmt"
	"time"
)

// Status of a team's slot in a season. Only registered and confirmed count
// against season capacity.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusConfirmed  Status = "confirmed"
	StatusPending    Status = "pending"
	StatusDeclined   Status = "declined"
)

func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusConfirmed, StatusPending, StatusDeclined:
		return true
	default:
		return false
	}
}

// CountsAgainstCapacity reports whether a slot in this status consumes one of
// the season's max_teams places.
func (s Status) CountsAgainstCapacity() bool {
	return s == StatusRegistered || s == StatusConfirmed
}

var (
	ErrCapacityExceeded  = errors.New("season is at capacity")
	ErrAlreadyRegistered = errors.New("team is already registered for this season")
)

// Registration is a team's confirmed or pending slot in a season.
type Registration struct {
	ID        string
	SeasonID  string
	LeagueID  string
	TeamID    string
	Status    Status
	Seed      int
	CreatedAt time.Time
}

func (r Registration) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("registration id is required")
	}
	if r.SeasonID == "" {
		return fmt.Errorf("registration season id is required")
	}
	if r.TeamID == "" {
		return fmt.Errorf("registration team id is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("registration status %q is not valid", r.Status)
	}

	return nil
}
