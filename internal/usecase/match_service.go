package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/user"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

// MatchService records match results and keeps the derived standings fresh.
type MatchService struct {
	leagues   league.Repository
	seasons   season.Repository
	matches   match.Repository
	standings *StandingsService
	events    EventPublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(
	leagues league.Repository,
	seasons season.Repository,
	matches match.Repository,
	standings *StandingsService,
	events EventPublisher,
	logger *logging.Logger,
) *MatchService {
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		leagues:   leagues,
		seasons:   seasons,
		matches:   matches,
		standings: standings,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MatchService) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
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

	items, err := s.matches.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// RecordResult completes a match with its final score and recomputes the
// season standings. The standings refresh is best effort; the next recompute
// picks up a missed one since the result row is already committed.
func (s *MatchService) RecordResult(ctx context.Context, actor user.Principal, matchID string, homeScore, awayScore int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.RecordResult")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if homeScore < 0 || awayScore < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	m, exists, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	sn, exists, err := s.seasons.GetByID(ctx, m.SeasonID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: season=%s", ErrNotFound, m.SeasonID)
	}

	lg, exists, err := s.leagues.GetByID(ctx, sn.LeagueID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: league=%s", ErrNotFound, sn.LeagueID)
	}
	if err := requireLeagueAdmin(actor, lg); err != nil {
		return match.Match{}, err
	}

	switch sn.Status {
	case season.StatusActive, season.StatusPlayoffs, season.StatusFixturesGenerated:
	default:
		return match.Match{}, fmt.Errorf("%w: season=%s does not accept results in status %s", ErrPreconditionFailed, sn.ID, sn.Status)
	}

	updated, err := s.matches.RecordResult(ctx, matchID, homeScore, awayScore)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrNotFound):
			return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		case errors.Is(err, match.ErrAlreadyResolved):
			return match.Match{}, fmt.Errorf("%w: match=%s result already recorded", ErrConflict, matchID)
		default:
			return match.Match{}, fmt.Errorf("record result: %w", err)
		}
	}

	if _, err := s.standings.Recompute(ctx, updated.SeasonID); err != nil {
		s.logger.WarnContext(ctx, "recompute standings after result", "season_id", updated.SeasonID, "error", err)
	}

	s.events.Publish(ctx, Event{
		Type:       EventMatchResultRecorded,
		OccurredAt: s.now(),
		Payload: map[string]any{
			"match_id":   updated.ID,
			"season_id":  updated.SeasonID,
			"home_score": homeScore,
			"away_score": awayScore,
		},
	})
	return updated, nil
}
