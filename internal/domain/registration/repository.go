package registration

import "context"

// Repository describes registration persistence needs from use cases.
type Repository interface {
	// CreateWithinCapacity inserts the registration only if the season's
	// active count stays within maxTeams, counting and inserting inside one
	// transactional boundary. maxTeams <= 0 means uncapped. Returns
	// ErrCapacityExceeded when the slot is gone and ErrAlreadyRegistered on
	// a duplicate active slot for the team.
	CreateWithinCapacity(ctx context.Context, reg Registration, maxTeams int) error

	ListActiveBySeason(ctx context.Context, seasonID string) ([]Registration, error)
	CountActiveBySeason(ctx context.Context, seasonID string) (int, error)

	// FindActiveByTeamAndLeague reports whether the team already holds an
	// active slot in any season of the league.
	FindActiveByTeamAndLeague(ctx context.Context, teamID, leagueID string) (Registration, bool, error)
}
