package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/leagueday/internal/domain/match"
)

type MatchRepository struct {
	mu        sync.RWMutex
	items     map[string]match.Match
	standings *StandingsRepository
}

// NewMatchRepository shares the standings store because deleting a season's
// fixtures removes the derived standings in the same step.
func NewMatchRepository(matches []match.Match, standings *StandingsRepository) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = m
	}

	return &MatchRepository{items: items, standings: standings}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return m, true, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.SeasonID == seasonID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchdayNumber != out[j].MatchdayNumber {
			return out[i].MatchdayNumber < out[j].MatchdayNumber
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *MatchRepository) ReplaceBySeason(_ context.Context, seasonID string, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.items {
		if m.SeasonID == seasonID {
			delete(r.items, id)
		}
	}
	for _, m := range matches {
		r.items[m.ID] = m
	}

	return nil
}

func (r *MatchRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	r.mu.Lock()
	for id, m := range r.items {
		if m.SeasonID == seasonID {
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	if r.standings != nil {
		return r.standings.ReplaceBySeason(ctx, seasonID, nil)
	}
	return nil
}

func (r *MatchRepository) RecordResult(_ context.Context, matchID string, homeScore, awayScore int) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, match.ErrNotFound
	}
	if !m.Status.CanComplete() {
		return match.Match{}, match.ErrAlreadyResolved
	}

	m.Status = match.StatusCompleted
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	r.items[matchID] = m

	return m, nil
}
