package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/leagueday/internal/domain/match"
)

type matchTableModel struct {
	ID             string        `db:"id"`
	SeasonID       string        `db:"season_id"`
	HomeTeamID     string        `db:"home_team_id"`
	AwayTeamID     string        `db:"away_team_id"`
	MatchdayNumber int           `db:"matchday_number"`
	ScheduledAt    time.Time     `db:"scheduled_at"`
	Status         string        `db:"status"`
	HomeScore      sql.NullInt64 `db:"home_score"`
	AwayScore      sql.NullInt64 `db:"away_score"`
	CreatedAt      time.Time     `db:"created_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:             m.ID,
		SeasonID:       m.SeasonID,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		MatchdayNumber: m.MatchdayNumber,
		ScheduledAt:    m.ScheduledAt,
		Status:         match.Status(m.Status),
		HomeScore:      intPtr(m.HomeScore),
		AwayScore:      intPtr(m.AwayScore),
		CreatedAt:      m.CreatedAt,
	}
}

func matchToTableModel(m match.Match) matchTableModel {
	return matchTableModel{
		ID:             m.ID,
		SeasonID:       m.SeasonID,
		HomeTeamID:     m.HomeTeamID,
		AwayTeamID:     m.AwayTeamID,
		MatchdayNumber: m.MatchdayNumber,
		ScheduledAt:    m.ScheduledAt,
		Status:         string(m.Status),
		HomeScore:      nullInt(m.HomeScore),
		AwayScore:      nullInt(m.AwayScore),
		CreatedAt:      m.CreatedAt,
	}
}
