package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/leagueday/internal/domain/league"
)

// LeagueRepository keeps leagues in memory. Listing is ordered by creation
// time so seeded fixtures come back in a stable order.
type LeagueRepository struct {
	mu   sync.RWMutex
	byID map[string]league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	byID := make(map[string]league.League, len(leagues))
	for _, lg := range leagues {
		byID[lg.ID] = lg
	}

	return &LeagueRepository{byID: byID}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.byID))
	for _, lg := range r.byID {
		out = append(out, lg)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lg, ok := r.byID[leagueID]
	return lg, ok, nil
}
