package joinrequest

import (
	"errors"
	"fmt"
	"time"
)

// Status of a team's ask to join a league. Pending is the only non-terminal
// state; everything on the right-hand side is final and the record becomes
// immutable.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusExpired   Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusWithdrawn, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	return s.Valid() && s != StatusPending
}

// Sentinel errors owned by the domain so repositories and use cases agree on
// the failure vocabulary regardless of the backing store.
var (
	ErrNotFound         = errors.New("join request not found")
	ErrDuplicatePending = errors.New("team already has a pending request for this league")
	ErrNotPending       = errors.New("join request is not pending")
)

// JoinRequest is a team's pending ask to be admitted to a league, used when
// auto-approval is off.
type JoinRequest struct {
	ID            string
	TeamID        string
	LeagueID      string
	SeasonID      string
	RequestedBy   string
	Message       string
	Status        Status
	CreatedAt     time.Time
	ExpiresAt     time.Time
	ReviewedBy    *string
	ReviewedAt    *time.Time
	ReviewMessage *string
}

func (r JoinRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("join request id is required")
	}
	if r.TeamID == "" {
		return fmt.Errorf("join request team id is required")
	}
	if r.LeagueID == "" {
		return fmt.Errorf("join request league id is required")
	}
	if r.RequestedBy == "" {
		return fmt.Errorf("join request requester is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("join request status %q is not valid", r.Status)
	}

	return nil
}

// ExpiredBy reports whether the request is past its expiry instant. A stored
// pending status does not make a request pending: every read path must treat
// an expired request as not-pending even before the sweep flips the row.
func (r JoinRequest) ExpiredBy(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && r.ExpiresAt.Before(now)
}

// Pending reports whether the request is actionable at the given instant.
func (r JoinRequest) Pending(now time.Time) bool {
	return r.Status == StatusPending && !r.ExpiredBy(now)
}

// Review captures the admin decision applied to a pending request.
type Review struct {
	ReviewedBy string
	ReviewedAt time.Time
	Message    string
}
