package match

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusPostponed Status = "postponed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusCompleted, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanComplete reports whether a result may be recorded from this status.
func (s Status) CanComplete() bool {
	return s == StatusScheduled || s == StatusLive || s == StatusPostponed
}

var (
	ErrNotFound        = errors.New("match not found")
	ErrAlreadyResolved = errors.New("match result is already recorded")
)

// Match is a scheduled or played fixture between two registered teams.
type Match struct {
	ID             string
	SeasonID       string
	HomeTeamID     string
	AwayTeamID     string
	MatchdayNumber int
	ScheduledAt    time.Time
	Status         Status
	HomeScore      *int
	AwayScore      *int
	CreatedAt      time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.SeasonID == "" {
		return fmt.Errorf("match season id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires both team ids")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot pair a team with itself")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("match status %q is not valid", m.Status)
	}

	return nil
}

// CountsForStandings reports whether the match contributes to the ranking
// table: completed with both scores present.
func (m Match) CountsForStandings() bool {
	return m.Status == StatusCompleted && m.HomeScore != nil && m.AwayScore != nil
}
