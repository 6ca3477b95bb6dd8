package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pitchside/leagueday/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[string]season.Season
}

func NewSeasonRepository(seasons []season.Season) *SeasonRepository {
	items := make(map[string]season.Season, len(seasons))
	for _, s := range seasons {
		items[s.ID] = s
	}

	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) GetByID(_ context.Context, seasonID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[seasonID]
	if !ok {
		return season.Season{}, false, nil
	}

	return s, true, nil
}

func (r *SeasonRepository) ListByLeague(_ context.Context, leagueID string) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, s := range r.items {
		if s.LeagueID == leagueID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SeasonRepository) CompareAndSetStatus(_ context.Context, seasonID string, from, to season.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return false, fmt.Errorf("season %s not found", seasonID)
	}
	if s.Status != from {
		return false, nil
	}

	s.Status = to
	r.items[seasonID] = s
	return true, nil
}

func (r *SeasonRepository) CompareAndSetFixturesStatus(_ context.Context, seasonID string, from, to season.FixturesStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return false, fmt.Errorf("season %s not found", seasonID)
	}
	if s.FixturesStatus != from {
		return false, nil
	}

	s.FixturesStatus = to
	r.items[seasonID] = s
	return true, nil
}

func (r *SeasonRepository) MarkFixturesGenerated(_ context.Context, seasonID string, generatedAt time.Time, totalMatches int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return fmt.Errorf("season %s not found", seasonID)
	}

	s.FixturesStatus = season.FixturesCompleted
	s.FixturesGeneratedAt = &generatedAt
	s.TotalMatchesPlanned = totalMatches
	r.items[seasonID] = s
	return nil
}

func (r *SeasonRepository) SetRegisteredTeamsCount(_ context.Context, seasonID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[seasonID]
	if !ok {
		return fmt.Errorf("season %s not found", seasonID)
	}

	s.RegisteredTeamsCount = count
	r.items[seasonID] = s
	return nil
}
