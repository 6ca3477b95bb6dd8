package joinrequest

import (
	"context"
	"time"

	"github.com/pitchside/leagueday/internal/domain/registration"
)

// Repository describes join-request persistence. The multi-write operations
// exist because approval must be all-or-nothing: marking the request approved
// and creating the registration are one unit, and the capacity count belongs
// inside the same boundary as the insert.
type Repository interface {
	Create(ctx context.Context, request JoinRequest) error
	GetByID(ctx context.Context, requestID string) (JoinRequest, bool, error)

	// FindActiveByTeamAndLeague returns the team's non-terminal request for
	// the league, applying lazy expiry against now.
	FindActiveByTeamAndLeague(ctx context.Context, teamID, leagueID string, now time.Time) (JoinRequest, bool, error)

	// ListPendingByLeague excludes rows whose expiry is behind now even when
	// the stored status still says pending.
	ListPendingByLeague(ctx context.Context, leagueID string, now time.Time) ([]JoinRequest, error)

	ListByRequester(ctx context.Context, userID string) ([]JoinRequest, error)

	// ApproveAndRegister atomically marks a pending request approved and
	// inserts the season registration, re-counting active registrations
	// against maxTeams inside the same transaction. maxTeams <= 0 means
	// uncapped. Returns ErrNotPending when the request left pending in the
	// meantime and registration.ErrCapacityExceeded when the slot is gone.
	ApproveAndRegister(ctx context.Context, requestID string, review Review, reg registration.Registration, maxTeams int) error

	// Resolve moves a pending request to a terminal status (rejected or
	// withdrawn) with the review attached. Returns ErrNotPending when the
	// stored status is no longer pending.
	Resolve(ctx context.Context, requestID string, target Status, review Review) error

	// ExpireDue flips stored pending rows whose expiry is behind now to
	// expired and returns how many rows changed. Used by the background
	// sweep; correctness never depends on it running.
	ExpireDue(ctx context.Context, leagueID string, now time.Time) (int, error)

	// ListLeagueIDsWithDuePending lists leagues that currently hold stored
	// pending rows past expiry, for the sweep to fan out over.
	ListLeagueIDsWithDuePending(ctx context.Context, now time.Time) ([]string, error)
}
