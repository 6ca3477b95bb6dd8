package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pitchside/leagueday/internal/domain/registration"
)

type RegistrationRepository struct {
	mu    sync.RWMutex
	items map[string]registration.Registration
}

func NewRegistrationRepository(regs []registration.Registration) *RegistrationRepository {
	items := make(map[string]registration.Registration, len(regs))
	for _, reg := range regs {
		items[reg.ID] = reg
	}

	return &RegistrationRepository{items: items}
}

func (r *RegistrationRepository) CreateWithinCapacity(_ context.Context, reg registration.Registration, maxTeams int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, existing := range r.items {
		if !existing.Status.CountsAgainstCapacity() {
			continue
		}
		if existing.LeagueID == reg.LeagueID && existing.TeamID == reg.TeamID {
			return registration.ErrAlreadyRegistered
		}
		if existing.SeasonID == reg.SeasonID {
			count++
		}
	}
	if maxTeams > 0 && count >= maxTeams {
		return registration.ErrCapacityExceeded
	}

	r.items[reg.ID] = reg
	return nil
}

func (r *RegistrationRepository) ListActiveBySeason(_ context.Context, seasonID string) ([]registration.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registration.Registration, 0)
	for _, reg := range r.items {
		if reg.SeasonID == seasonID && reg.Status.CountsAgainstCapacity() {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func (r *RegistrationRepository) CountActiveBySeason(ctx context.Context, seasonID string) (int, error) {
	regs, err := r.ListActiveBySeason(ctx, seasonID)
	if err != nil {
		return 0, err
	}
	return len(regs), nil
}

func (r *RegistrationRepository) FindActiveByTeamAndLeague(_ context.Context, teamID, leagueID string) (registration.Registration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.items {
		if reg.TeamID == teamID && reg.LeagueID == leagueID && reg.Status.CountsAgainstCapacity() {
			return reg, true, nil
		}
	}

	return registration.Registration{}, false, nil
}
