package postgres

import "github.com/pitchside/leagueday/internal/domain/standings"

type standingsTableModel struct {
	SeasonID       string `db:"season_id"`
	TeamID         string `db:"team_id"`
	Position       int    `db:"position"`
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	Drawn          int    `db:"drawn"`
	Lost           int    `db:"lost"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
	Points         int    `db:"points"`
}

func (m standingsTableModel) toDomain() standings.Row {
	return standings.Row{
		SeasonID:       m.SeasonID,
		TeamID:         m.TeamID,
		Position:       m.Position,
		Played:         m.Played,
		Won:            m.Won,
		Drawn:          m.Drawn,
		Lost:           m.Lost,
		GoalsFor:       m.GoalsFor,
		GoalsAgainst:   m.GoalsAgainst,
		GoalDifference: m.GoalDifference,
		Points:         m.Points,
	}
}
