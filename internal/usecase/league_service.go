package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pitchside/leagueday/internal/domain/league"
)

// LeagueService serves league reads for the public surface.
type LeagueService struct {
	leagues league.Repository
}

func NewLeagueService(leagues league.Repository) *LeagueService {
	return &LeagueService{leagues: leagues}
}

func (s *LeagueService) List(ctx context.Context) ([]league.League, error) {
	items, err := s.leagues.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *LeagueService) GetByID(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return lg, nil
}
