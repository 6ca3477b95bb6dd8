package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/user"
	"github.com/pitchside/leagueday/internal/infrastructure/repository/memory"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

type matchEnv struct {
	service   *MatchService
	seasons   *memory.SeasonRepository
	matches   *memory.MatchRepository
	standings *memory.StandingsRepository
	events    *capturedEvents
}

func newMatchEnv() *matchEnv {
	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	seasons := memory.NewSeasonRepository(memory.SeedSeasons())
	registrations := memory.NewRegistrationRepository(memory.SeedRegistrations())
	standingsRepo := memory.NewStandingsRepository()
	matches := memory.NewMatchRepository(nil, standingsRepo)
	events := &capturedEvents{}

	standingsService := NewStandingsService(leagues, seasons, registrations, matches, standingsRepo, logging.NewNop())
	service := NewMatchService(leagues, seasons, matches, standingsService, events, logging.NewNop())

	return &matchEnv{
		service:   service,
		seasons:   seasons,
		matches:   matches,
		standings: standingsRepo,
		events:    events,
	}
}

// moveToFixturesGenerated walks the seeded registration season to the first
// status that accepts results.
func (env *matchEnv) moveToFixturesGenerated(t *testing.T, seasonID string) {
	t.Helper()

	steps := [][2]season.Status{
		{season.StatusRegistration, season.StatusFixturesPending},
		{season.StatusFixturesPending, season.StatusFixturesGenerated},
	}
	for _, step := range steps {
		swapped, err := env.seasons.CompareAndSetStatus(t.Context(), seasonID, step[0], step[1])
		if err != nil || !swapped {
			t.Fatalf("move season %s -> %s: swapped=%v err=%v", step[0], step[1], swapped, err)
		}
	}
}

func seedMatch(t *testing.T, env *matchEnv, id, seasonID string) {
	t.Helper()

	err := env.matches.ReplaceBySeason(t.Context(), seasonID, []match.Match{
		{
			ID:             id,
			SeasonID:       seasonID,
			HomeTeamID:     "team-alpha",
			AwayTeamID:     "team-bravo",
			MatchdayNumber: 1,
			ScheduledAt:    time.Date(2026, 3, 8, 15, 0, 0, 0, time.UTC),
			Status:         match.StatusScheduled,
			CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}
}

func TestMatchService_RecordResult(t *testing.T) {
	t.Parallel()

	env := newMatchEnv()
	admin := user.Principal{UserID: memory.UserIDSundayOwner}
	env.moveToFixturesGenerated(t, memory.SeasonIDSundaySpring)
	seedMatch(t, env, "m-spring-1", memory.SeasonIDSundaySpring)

	updated, err := env.service.RecordResult(t.Context(), admin, "m-spring-1", 2, 1)
	if err != nil {
		t.Fatalf("record result: %v", err)
	}
	if updated.Status != match.StatusCompleted {
		t.Fatalf("expected completed match, got %s", updated.Status)
	}
	if updated.HomeScore == nil || *updated.HomeScore != 2 || updated.AwayScore == nil || *updated.AwayScore != 1 {
		t.Fatalf("unexpected scores: %v %v", updated.HomeScore, updated.AwayScore)
	}
	if env.events.last() != EventMatchResultRecorded {
		t.Fatalf("expected %s event, got %q", EventMatchResultRecorded, env.events.last())
	}

	rows, err := env.standings.ListBySeason(t.Context(), memory.SeasonIDSundaySpring)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(rows))
	}
	if rows[0].TeamID != "team-alpha" || rows[0].Points != 3 {
		t.Fatalf("expected team-alpha leading on 3 points, got %+v", rows[0])
	}

	// A completed match holds its result.
	if _, err := env.service.RecordResult(t.Context(), admin, "m-spring-1", 0, 0); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on second result, got %v", err)
	}
}

func TestMatchService_RecordResult_Validation(t *testing.T) {
	t.Parallel()

	env := newMatchEnv()
	admin := user.Principal{UserID: memory.UserIDSundayOwner}
	env.moveToFixturesGenerated(t, memory.SeasonIDSundaySpring)
	seedMatch(t, env, "m-spring-1", memory.SeasonIDSundaySpring)

	if _, err := env.service.RecordResult(t.Context(), admin, "", 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty id, got %v", err)
	}
	if _, err := env.service.RecordResult(t.Context(), admin, "m-spring-1", -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative score, got %v", err)
	}
	if _, err := env.service.RecordResult(t.Context(), admin, "m-missing", 1, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := env.service.RecordResult(t.Context(), user.Principal{UserID: "user-stranger"}, "m-spring-1", 1, 0); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestMatchService_RecordResult_SeasonStatusGuard(t *testing.T) {
	t.Parallel()

	env := newMatchEnv()
	admin := user.Principal{UserID: memory.UserIDSundayOwner}
	// Season still in registration; results are premature.
	seedMatch(t, env, "m-early", memory.SeasonIDSundaySpring)

	if _, err := env.service.RecordResult(t.Context(), admin, "m-early", 1, 1); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected precondition failure, got %v", err)
	}
}

func TestMatchService_ListBySeason(t *testing.T) {
	t.Parallel()

	env := newMatchEnv()
	env.moveToFixturesGenerated(t, memory.SeasonIDSundaySpring)
	seedMatch(t, env, "m-spring-1", memory.SeasonIDSundaySpring)

	items, err := env.service.ListBySeason(t.Context(), memory.SeasonIDSundaySpring)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m-spring-1" {
		t.Fatalf("unexpected matches: %+v", items)
	}

	if _, err := env.service.ListBySeason(t.Context(), "sn-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown season, got %v", err)
	}
}
