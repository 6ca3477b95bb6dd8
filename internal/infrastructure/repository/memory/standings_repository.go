package memory

import (
	"context"
	"sync"

	"github.com/pitchside/leagueday/internal/domain/standings"
)

type StandingsRepository struct {
	mu    sync.RWMutex
	items map[string][]standings.Row
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{items: make(map[string][]standings.Row)}
}

func (r *StandingsRepository) ListBySeason(_ context.Context, seasonID string) ([]standings.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.items[seasonID]
	out := make([]standings.Row, len(rows))
	copy(out, rows)

	return out, nil
}

func (r *StandingsRepository) ReplaceBySeason(_ context.Context, seasonID string, rows []standings.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(rows) == 0 {
		delete(r.items, seasonID)
		return nil
	}

	stored := make([]standings.Row, len(rows))
	copy(stored, rows)
	r.items[seasonID] = stored

	return nil
}
