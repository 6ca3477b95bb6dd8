package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/user"
	"github.com/pitchside/leagueday/internal/fixtures/roundrobin"
	"github.com/pitchside/leagueday/internal/infrastructure/repository/memory"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

type seasonEnv struct {
	service       *SeasonService
	seasons       *memory.SeasonRepository
	matches       *memory.MatchRepository
	standings     *memory.StandingsRepository
	registrations *memory.RegistrationRepository
	events        *capturedEvents
}

func newSeasonEnv(generator FixtureGenerator) *seasonEnv {
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	seasons := memory.NewSeasonRepository(memory.SeedSeasons())
	registrations := memory.NewRegistrationRepository(memory.SeedRegistrations())
	standings := memory.NewStandingsRepository()
	matches := memory.NewMatchRepository(nil, standings)
	events := &capturedEvents{}

	if generator == nil {
		generator = roundrobin.NewGenerator(&sequenceIDs{})
	}

	service := NewSeasonService(leagues, seasons, registrations, matches, generator, events, logging.NewNop())

	return &seasonEnv{
		service:       service,
		seasons:       seasons,
		matches:       matches,
		standings:     standings,
		registrations: registrations,
		events:        events,
	}
}

func TestSeasonService_TransitionStatus(t *testing.T) {
	t.Parallel()

	env := newSeasonEnv(nil)
	admin := user.Principal{UserID: memory.UserIDSundayOwner}

	updated, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.Status != season.StatusFixturesPending {
		t.Fatalf("expected %s, got %s", season.StatusFixturesPending, updated.Status)
	}
	if env.events.last() != EventSeasonStatusChanged {
		t.Fatalf("expected %s event, got %q", EventSeasonStatusChanged, env.events.last())
	}

	// Registration cannot jump straight to active play.
	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusPlayoffs); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	// Completed seasons are immutable.
	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundayWinter, season.StatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition from completed, got %v", err)
	}
	// Only league admins may drive the lifecycle.
	if _, err := env.service.TransitionStatus(t.Context(), user.Principal{UserID: "user-stranger"}, memory.SeasonIDSundaySpring, season.StatusFixturesGenerated); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSeasonService_GenerateFixtures(t *testing.T) {
	t.Parallel()

	env := newSeasonEnv(nil)
	admin := user.Principal{UserID: memory.UserIDSundayOwner}
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	env.service.now = func() time.Time { return now }

	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending); err != nil {
		t.Fatalf("move to fixtures_pending: %v", err)
	}

	matches, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring)
	if err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	// Two seeded teams, single round: one match.
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	sn, _, _ := env.seasons.GetByID(t.Context(), memory.SeasonIDSundaySpring)
	if sn.FixturesStatus != season.FixturesCompleted {
		t.Fatalf("expected fixtures completed, got %s", sn.FixturesStatus)
	}
	if sn.Status != season.StatusFixturesGenerated {
		t.Fatalf("expected season %s, got %s", season.StatusFixturesGenerated, sn.Status)
	}
	if sn.TotalMatchesPlanned != 1 {
		t.Fatalf("expected 1 planned match, got %d", sn.TotalMatchesPlanned)
	}
	if sn.FixturesGeneratedAt == nil || !sn.FixturesGeneratedAt.Equal(now) {
		t.Fatalf("expected generation timestamp %v, got %v", now, sn.FixturesGeneratedAt)
	}
	if env.events.last() != EventFixturesGenerated {
		t.Fatalf("expected %s event, got %q", EventFixturesGenerated, env.events.last())
	}

	// A second run must not silently rebuild a completed fixture set.
	if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected precondition failure on regeneration, got %v", err)
	}
}

func TestSeasonService_GenerateFixtures_Preconditions(t *testing.T) {
	t.Parallel()

	admin := user.Principal{UserID: memory.UserIDSundayOwner}

	t.Run("wrong season status", func(t *testing.T) {
		t.Parallel()

		env := newSeasonEnv(nil)
		if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); !errors.Is(err, ErrPreconditionFailed) {
			t.Fatalf("expected precondition failure in registration status, got %v", err)
		}
	})

	t.Run("too few teams", func(t *testing.T) {
		t.Parallel()

		env := newSeasonEnv(nil)
		futsalAdmin := user.Principal{UserID: memory.UserIDFutsalOwner}
		if _, err := env.service.TransitionStatus(t.Context(), futsalAdmin, memory.SeasonIDFutsalOpen, season.StatusFixturesPending); err != nil {
			t.Fatalf("move to fixtures_pending: %v", err)
		}
		if _, err := env.service.GenerateFixtures(t.Context(), futsalAdmin, memory.SeasonIDFutsalOpen); !errors.Is(err, ErrPreconditionFailed) {
			t.Fatalf("expected precondition failure with no teams, got %v", err)
		}
	})

	t.Run("generation already claimed", func(t *testing.T) {
		t.Parallel()

		env := newSeasonEnv(nil)
		if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending); err != nil {
			t.Fatalf("move to fixtures_pending: %v", err)
		}
		if _, err := env.seasons.CompareAndSetFixturesStatus(t.Context(), memory.SeasonIDSundaySpring, season.FixturesPending, season.FixturesGenerating); err != nil {
			t.Fatalf("claim generation: %v", err)
		}
		if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected conflict while generating, got %v", err)
		}
	})
}

type failingGenerator struct{}

func (failingGenerator) Generate(season.Season, []string) ([]match.Match, error) {
	return nil, fmt.Errorf("scheduler blew up")
}

func TestSeasonService_GenerateFixtures_FailureMarksError(t *testing.T) {
	t.Parallel()

	env := newSeasonEnv(failingGenerator{})
	admin := user.Principal{UserID: memory.UserIDSundayOwner}

	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending); err != nil {
		t.Fatalf("move to fixtures_pending: %v", err)
	}

	_, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected generation failure, got %v", err)
	}

	sn, _, _ := env.seasons.GetByID(t.Context(), memory.SeasonIDSundaySpring)
	if sn.FixturesStatus != season.FixturesError {
		t.Fatalf("expected fixtures error status, got %s", sn.FixturesStatus)
	}
	if sn.Status != season.StatusFixturesPending {
		t.Fatalf("season status must not advance on failure, got %s", sn.Status)
	}
}

func TestSeasonService_DeleteFixtures(t *testing.T) {
	t.Parallel()

	env := newSeasonEnv(nil)
	admin := user.Principal{UserID: memory.UserIDSundayOwner}

	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending); err != nil {
		t.Fatalf("move to fixtures_pending: %v", err)
	}
	if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}

	if err := env.service.DeleteFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); err != nil {
		t.Fatalf("delete fixtures: %v", err)
	}

	remaining, _ := env.matches.ListBySeason(t.Context(), memory.SeasonIDSundaySpring)
	if len(remaining) != 0 {
		t.Fatalf("expected no matches after delete, got %d", len(remaining))
	}
	rows, _ := env.standings.ListBySeason(t.Context(), memory.SeasonIDSundaySpring)
	if len(rows) != 0 {
		t.Fatalf("expected standings cleared with fixtures, got %d rows", len(rows))
	}

	sn, _, _ := env.seasons.GetByID(t.Context(), memory.SeasonIDSundaySpring)
	if sn.FixturesStatus != season.FixturesPending {
		t.Fatalf("expected fixtures back to pending, got %s", sn.FixturesStatus)
	}
	if sn.Status != season.StatusFixturesPending {
		t.Fatalf("expected season back to %s, got %s", season.StatusFixturesPending, sn.Status)
	}

	// Generation can run again after the reset.
	if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); err != nil {
		t.Fatalf("regenerate after delete: %v", err)
	}
}

func TestSeasonService_DeleteFixtures_BlockedDuringPlay(t *testing.T) {
	t.Parallel()

	env := newSeasonEnv(nil)
	admin := user.Principal{UserID: memory.UserIDSundayOwner}

	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusFixturesPending); err != nil {
		t.Fatalf("move to fixtures_pending: %v", err)
	}
	if _, err := env.service.GenerateFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); err != nil {
		t.Fatalf("generate fixtures: %v", err)
	}
	if _, err := env.service.TransitionStatus(t.Context(), admin, memory.SeasonIDSundaySpring, season.StatusActive); err != nil {
		t.Fatalf("activate season: %v", err)
	}

	if err := env.service.DeleteFixtures(t.Context(), admin, memory.SeasonIDSundaySpring); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected precondition failure during play, got %v", err)
	}
}
