package season

import (
	"context"
	"time"
)

// Repository describes season persistence needs from use cases. The two
// status columns are moved with compare-and-swap updates so concurrent
// administrative actions cannot skip the transition table.
type Repository interface {
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Season, error)

	// CompareAndSetStatus updates status from->to in one statement and
	// reports whether the row was in the expected state.
	CompareAndSetStatus(ctx context.Context, seasonID string, from, to Status) (bool, error)

	// CompareAndSetFixturesStatus is the CAS twin for the fixtures column.
	CompareAndSetFixturesStatus(ctx context.Context, seasonID string, from, to FixturesStatus) (bool, error)

	// MarkFixturesGenerated records a successful generation run: fixtures
	// status completed, generation timestamp and planned match count.
	MarkFixturesGenerated(ctx context.Context, seasonID string, generatedAt time.Time, totalMatches int) error

	// SetRegisteredTeamsCount refreshes the denormalized roster counter.
	SetRegisteredTeamsCount(ctx context.Context, seasonID string, count int) error
}
