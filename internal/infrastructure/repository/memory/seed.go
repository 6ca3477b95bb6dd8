package memory

import (
	"time"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
)

const (
	LeagueIDSundayFootball = "lg-sunday-football"
	LeagueIDCityFutsal     = "lg-city-futsal"
	LeagueIDInviteOnly     = "lg-invite-only"
	LeagueIDClosedEntries  = "lg-closed-entries"

	SeasonIDSundaySpring = "sn-sunday-spring-2026"
	SeasonIDSundayWinter = "sn-sunday-winter-2025"
	SeasonIDFutsalOpen   = "sn-futsal-open-2026"
	SeasonIDClosedSpring = "sn-closed-spring-2026"

	UserIDSundayOwner = "user-sunday-owner"
	UserIDFutsalOwner = "user-futsal-owner"
)

func intPtr(v int) *int { return &v }

func SeedLeagues() []league.League {
	deadline := time.Date(2026, 1, 15, 23, 59, 59, 0, time.UTC)
	return []league.League{
		{
			ID:        LeagueIDSundayFootball,
			Name:      "Sunday Football League",
			Sport:     "football",
			CreatedBy: UserIDSundayOwner,
			Active:    true,
			Public:    true,
			MaxTeams:  intPtr(12),
			CreatedAt: time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          LeagueIDCityFutsal,
			Name:        "City Futsal Open",
			Sport:       "futsal",
			CreatedBy:   UserIDFutsalOwner,
			Active:      true,
			Public:      true,
			AutoApprove: true,
			CreatedAt:   time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        LeagueIDInviteOnly,
			Name:      "Invite Only Cup",
			Sport:     "football",
			CreatedBy: UserIDSundayOwner,
			Active:    true,
			Public:    false,
			CreatedAt: time.Date(2025, 12, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:                   LeagueIDClosedEntries,
			Name:                 "Closed Entries League",
			Sport:                "football",
			CreatedBy:            UserIDSundayOwner,
			Active:               true,
			Public:               true,
			RegistrationDeadline: &deadline,
			CreatedAt:            time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:             SeasonIDSundaySpring,
			LeagueID:       LeagueIDSundayFootball,
			Name:           "Spring 2026",
			Status:         season.StatusRegistration,
			FixturesStatus: season.FixturesPending,
			MinTeams:       2,
			MaxTeams:       4,
			Rounds:         1,
			CreatedAt:      time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:             SeasonIDSundayWinter,
			LeagueID:       LeagueIDSundayFootball,
			Name:           "Winter 2025",
			Status:         season.StatusCompleted,
			FixturesStatus: season.FixturesCompleted,
			MinTeams:       2,
			Rounds:         1,
			CreatedAt:      time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:             SeasonIDFutsalOpen,
			LeagueID:       LeagueIDCityFutsal,
			Name:           "Open 2026",
			Status:         season.StatusRegistration,
			FixturesStatus: season.FixturesPending,
			MinTeams:       2,
			Rounds:         2,
			HomeAndAway:    false,
			PointsForWin:   intPtr(2),
			PointsForDraw:  intPtr(1),
			PointsForLoss:  intPtr(0),
			CreatedAt:      time.Date(2025, 12, 20, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:             SeasonIDClosedSpring,
			LeagueID:       LeagueIDClosedEntries,
			Name:           "Spring 2026",
			Status:         season.StatusRegistration,
			FixturesStatus: season.FixturesPending,
			MinTeams:       2,
			Rounds:         1,
			CreatedAt:      time.Date(2025, 11, 25, 9, 0, 0, 0, time.UTC),
		},
	}
}

func SeedRegistrations() []registration.Registration {
	return []registration.Registration{
		{
			ID:        "reg-seed-alpha",
			SeasonID:  SeasonIDSundaySpring,
			LeagueID:  LeagueIDSundayFootball,
			TeamID:    "team-alpha",
			Status:    registration.StatusRegistered,
			CreatedAt: time.Date(2025, 12, 16, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "reg-seed-bravo",
			SeasonID:  SeasonIDSundaySpring,
			LeagueID:  LeagueIDSundayFootball,
			TeamID:    "team-bravo",
			Status:    registration.StatusRegistered,
			CreatedAt: time.Date(2025, 12, 17, 9, 0, 0, 0, time.UTC),
		},
	}
}
