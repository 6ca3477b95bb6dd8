package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/standings"
	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/platform/resilience"
)

const recomputeConcurrency = 4

// StandingsService recomputes and serves ranking tables. Standings are
// derived data: a recompute always rebuilds the full season table from the
// stored matches, never incrementally.
type StandingsService struct {
	leagues       league.Repository
	seasons       season.Repository
	registrations registration.Repository
	matches       match.Repository
	standings     standings.Repository
	flight        resilience.Group
	logger        *logging.Logger
}

func NewStandingsService(
	leagues league.Repository,
	seasons season.Repository,
	registrations registration.Repository,
	matches match.Repository,
	standingsRepo standings.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagues:       leagues,
		seasons:       seasons,
		registrations: registrations,
		matches:       matches,
		standings:     standingsRepo,
		logger:        logger,
	}
}

func (s *StandingsService) ListBySeason(ctx context.Context, seasonID string) ([]standings.Row, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasons.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	rows, err := s.standings.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	return rows, nil
}

// Recompute rebuilds the season's table and stores it. Concurrent recomputes
// for the same season collapse into one run.
func (s *StandingsService) Recompute(ctx context.Context, seasonID string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.Recompute")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	result, _, err := s.flight.Do("recompute:"+seasonID, func() (any, error) {
		return s.recompute(ctx, seasonID)
	})
	if err != nil {
		return nil, err
	}

	rows, _ := result.([]standings.Row)
	return rows, nil
}

func (s *StandingsService) recompute(ctx context.Context, seasonID string) ([]standings.Row, error) {
	sn, exists, err := s.seasons.GetByID(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	regs, err := s.registrations.ListActiveBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	teamIDs := make([]string, 0, len(regs))
	for _, reg := range regs {
		teamIDs = append(teamIDs, reg.TeamID)
	}

	matchRows, err := s.matches.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	rows := standings.Compute(seasonID, teamIDs, matchRows, sn.Scoring())
	if err := s.standings.ReplaceBySeason(ctx, seasonID, rows); err != nil {
		return nil, fmt.Errorf("store standings: %w", err)
	}

	s.logger.DebugContext(ctx, "standings recomputed", "season_id", seasonID, "rows", len(rows))
	return rows, nil
}

// RecomputeLeague rebuilds the table of every season in the league,
// a bounded number at a time.
func (s *StandingsService) RecomputeLeague(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.RecomputeLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	seasonRows, err := s.seasons.ListByLeague(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}

	workers := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(recomputeConcurrency)
	for _, sn := range seasonRows {
		if sn.Status == season.StatusDraft || sn.Status == season.StatusRegistration {
			continue
		}
		seasonID := sn.ID
		workers.Go(func(ctx context.Context) error {
			if _, err := s.Recompute(ctx, seasonID); err != nil {
				return fmt.Errorf("season=%s: %w", seasonID, err)
			}
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return fmt.Errorf("recompute league standings: %w", err)
	}
	return nil
}
