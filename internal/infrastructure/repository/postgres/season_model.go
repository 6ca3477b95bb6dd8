package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/leagueday/internal/domain/season"
)

type seasonTableModel struct {
	ID                   string        `db:"id"`
	LeagueID             string        `db:"league_id"`
	Name                 string        `db:"name"`
	Status               string        `db:"status"`
	FixturesStatus       string        `db:"fixtures_status"`
	MinTeams             int           `db:"min_teams"`
	MaxTeams             int           `db:"max_teams"`
	Rounds               int           `db:"rounds"`
	HomeAndAway          bool          `db:"home_and_away"`
	PointsForWin         sql.NullInt64 `db:"points_for_win"`
	PointsForDraw        sql.NullInt64 `db:"points_for_draw"`
	PointsForLoss        sql.NullInt64 `db:"points_for_loss"`
	RegisteredTeamsCount int           `db:"registered_teams_count"`
	TotalMatchesPlanned  int           `db:"total_matches_planned"`
	FixturesGeneratedAt  *time.Time    `db:"fixtures_generated_at"`
	StartDate            *time.Time    `db:"start_date"`
	EndDate              *time.Time    `db:"end_date"`
	CreatedAt            time.Time     `db:"created_at"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:                   m.ID,
		LeagueID:             m.LeagueID,
		Name:                 m.Name,
		Status:               season.Status(m.Status),
		FixturesStatus:       season.FixturesStatus(m.FixturesStatus),
		MinTeams:             m.MinTeams,
		MaxTeams:             m.MaxTeams,
		Rounds:               m.Rounds,
		HomeAndAway:          m.HomeAndAway,
		PointsForWin:         intPtr(m.PointsForWin),
		PointsForDraw:        intPtr(m.PointsForDraw),
		PointsForLoss:        intPtr(m.PointsForLoss),
		RegisteredTeamsCount: m.RegisteredTeamsCount,
		TotalMatchesPlanned:  m.TotalMatchesPlanned,
		FixturesGeneratedAt:  m.FixturesGeneratedAt,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		CreatedAt:            m.CreatedAt,
	}
}
