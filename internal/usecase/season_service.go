package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/user"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

// FixtureGenerator produces the full match set for a season from its
// registered teams.
type FixtureGenerator interface {
	Generate(sn season.Season, teamIDs []string) ([]match.Match, error)
}

// SeasonService owns the season lifecycle: status transitions, fixture
// generation and fixture deletion.
type SeasonService struct {
	leagues       league.Repository
	seasons       season.Repository
	registrations registration.Repository
	matches       match.Repository
	generator     FixtureGenerator
	events        EventPublisher
	logger        *logging.Logger
	now           func() time.Time
}

func NewSeasonService(
	leagues league.Repository,
	seasons season.Repository,
	registrations registration.Repository,
	matches match.Repository,
	generator FixtureGenerator,
	events EventPublisher,
	logger *logging.Logger,
) *SeasonService {
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		leagues:       leagues,
		seasons:       seasons,
		registrations: registrations,
		matches:       matches,
		generator:     generator,
		events:        events,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *SeasonService) GetByID(ctx context.Context, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	sn, exists, err := s.seasons.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return sn, nil
}

func (s *SeasonService) ListByLeague(ctx context.Context, leagueID string) ([]season.Season, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	items, err := s.seasons.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list seasons by league: %w", err)
	}
	return items, nil
}

// TransitionStatus moves the season to target when the transition table
// allows it. The write is a compare-and-swap so two concurrent transitions
// cannot both win.
func (s *SeasonService) TransitionStatus(ctx context.Context, actor user.Principal, seasonID string, target season.Status) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.TransitionStatus")
	defer span.End()

	if !target.Valid() {
		return season.Season{}, fmt.Errorf("%w: unknown season status %q", ErrInvalidInput, target)
	}

	sn, _, err := s.loadForAdmin(ctx, actor, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	if !sn.Status.CanTransition(target) {
		return season.Season{}, fmt.Errorf("%w: season=%s %s -> %s", ErrInvalidTransition, sn.ID, sn.Status, target)
	}

	swapped, err := s.seasons.CompareAndSetStatus(ctx, sn.ID, sn.Status, target)
	if err != nil {
		return season.Season{}, fmt.Errorf("set season status: %w", err)
	}
	if !swapped {
		return season.Season{}, fmt.Errorf("%w: season=%s status changed concurrently", ErrConflict, sn.ID)
	}

	from := sn.Status
	sn.Status = target
	s.events.Publish(ctx, Event{
		Type:       EventSeasonStatusChanged,
		OccurredAt: s.now(),
		Payload: map[string]any{
			"season_id": sn.ID,
			"league_id": sn.LeagueID,
			"from":      string(from),
			"to":        string(target),
		},
	})
	return sn, nil
}

// GenerateFixtures builds the season's full fixture set from its registered
// teams. The fixtures status is claimed with a compare-and-swap to
// generating, so a concurrent run loses before any match row is touched, and
// ends at completed or error.
func (s *SeasonService) GenerateFixtures(ctx context.Context, actor user.Principal, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.GenerateFixtures")
	defer span.End()

	sn, _, err := s.loadForAdmin(ctx, actor, seasonID)
	if err != nil {
		return nil, err
	}

	if sn.Status != season.StatusFixturesPending {
		return nil, fmt.Errorf("%w: season=%s must be %s to generate fixtures, is %s", ErrPreconditionFailed, sn.ID, season.StatusFixturesPending, sn.Status)
	}
	if !sn.FixturesStatus.CanStartGeneration() {
		return nil, fmt.Errorf("%w: fixtures for season=%s are %s", ErrConflict, sn.ID, sn.FixturesStatus)
	}

	regs, err := s.registrations.ListActiveBySeason(ctx, sn.ID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	teamIDs := make([]string, 0, len(regs))
	for _, reg := range regs {
		teamIDs = append(teamIDs, reg.TeamID)
	}

	minTeams := sn.MinTeams
	if minTeams < 2 {
		minTeams = 2
	}
	if len(teamIDs) < minTeams {
		return nil, fmt.Errorf("%w: season=%s has %d registered teams, needs %d", ErrPreconditionFailed, sn.ID, len(teamIDs), minTeams)
	}
	if sn.MaxTeams > 0 && len(teamIDs) > sn.MaxTeams {
		return nil, fmt.Errorf("%w: season=%s has %d registered teams over cap %d", ErrPreconditionFailed, sn.ID, len(teamIDs), sn.MaxTeams)
	}

	claimed, err := s.seasons.CompareAndSetFixturesStatus(ctx, sn.ID, sn.FixturesStatus, season.FixturesGenerating)
	if err != nil {
		return nil, fmt.Errorf("claim fixture generation: %w", err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: fixture generation for season=%s already claimed", ErrConflict, sn.ID)
	}

	matches, err := s.generator.Generate(sn, teamIDs)
	if err != nil {
		s.failGeneration(ctx, sn.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := s.matches.ReplaceBySeason(ctx, sn.ID, matches); err != nil {
		s.failGeneration(ctx, sn.ID, err)
		return nil, fmt.Errorf("%w: store fixtures: %v", ErrGenerationFailed, err)
	}

	generatedAt := s.now()
	if err := s.seasons.MarkFixturesGenerated(ctx, sn.ID, generatedAt, len(matches)); err != nil {
		return nil, fmt.Errorf("mark fixtures generated: %w", err)
	}

	// Status follows the fixtures outcome; losing this swap to a concurrent
	// admin action leaves a consistent state.
	if _, err := s.seasons.CompareAndSetStatus(ctx, sn.ID, season.StatusFixturesPending, season.StatusFixturesGenerated); err != nil {
		s.logger.WarnContext(ctx, "advance season status after generation", "season_id", sn.ID, "error", err)
	}

	s.events.Publish(ctx, Event{
		Type:       EventFixturesGenerated,
		OccurredAt: generatedAt,
		Payload: map[string]any{
			"season_id":   sn.ID,
			"league_id":   sn.LeagueID,
			"match_count": len(matches),
		},
	})
	return matches, nil
}

// DeleteFixtures drops the season's matches and derived standings so the
// fixtures can be regenerated. Not allowed once play has started.
func (s *SeasonService) DeleteFixtures(ctx context.Context, actor user.Principal, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "SeasonService.DeleteFixtures")
	defer span.End()

	sn, _, err := s.loadForAdmin(ctx, actor, seasonID)
	if err != nil {
		return err
	}

	switch sn.Status {
	case season.StatusActive, season.StatusPlayoffs, season.StatusCompleted:
		return fmt.Errorf("%w: cannot delete fixtures for season=%s in status %s", ErrPreconditionFailed, sn.ID, sn.Status)
	}
	switch sn.FixturesStatus {
	case season.FixturesCompleted, season.FixturesNeedsRegeneration:
	case season.FixturesGenerating:
		return fmt.Errorf("%w: fixture generation for season=%s is running", ErrConflict, sn.ID)
	default:
		return fmt.Errorf("%w: season=%s has no generated fixtures to delete", ErrPreconditionFailed, sn.ID)
	}

	if err := s.matches.DeleteBySeason(ctx, sn.ID); err != nil {
		return fmt.Errorf("delete fixtures: %w", err)
	}

	if sn.FixturesStatus != season.FixturesPending {
		if _, err := s.seasons.CompareAndSetFixturesStatus(ctx, sn.ID, sn.FixturesStatus, season.FixturesPending); err != nil {
			return fmt.Errorf("reset fixtures status: %w", err)
		}
	}
	if sn.Status == season.StatusFixturesGenerated {
		if _, err := s.seasons.CompareAndSetStatus(ctx, sn.ID, season.StatusFixturesGenerated, season.StatusFixturesPending); err != nil {
			s.logger.WarnContext(ctx, "reset season status after fixture delete", "season_id", sn.ID, "error", err)
		}
	}

	s.events.Publish(ctx, Event{
		Type:       EventFixturesDeleted,
		OccurredAt: s.now(),
		Payload: map[string]any{
			"season_id": sn.ID,
			"league_id": sn.LeagueID,
		},
	})
	return nil
}

// failGeneration records a failed run so a retry can re-enter generation.
func (s *SeasonService) failGeneration(ctx context.Context, seasonID string, cause error) {
	s.logger.ErrorContext(ctx, "fixture generation failed", "season_id", seasonID, "error", cause)
	if _, err := s.seasons.CompareAndSetFixturesStatus(ctx, seasonID, season.FixturesGenerating, season.FixturesError); err != nil {
		s.logger.ErrorContext(ctx, "mark fixtures errored", "season_id", seasonID, "error", err)
	}
}

func (s *SeasonService) loadForAdmin(ctx context.Context, actor user.Principal, seasonID string) (season.Season, league.League, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, league.League{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	sn, exists, err := s.seasons.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, league.League{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, league.League{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	lg, exists, err := s.leagues.GetByID(ctx, sn.LeagueID)
	if err != nil {
		return season.Season{}, league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return season.Season{}, league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, sn.LeagueID)
	}
	if err := requireLeagueAdmin(actor, lg); err != nil {
		return season.Season{}, league.League{}, err
	}

	return sn, lg, nil
}
