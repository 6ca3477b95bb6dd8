package standings

import (
	"sort"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
)

// Compute builds the ordered ranking table for a season from its registered
// team ids and matches. Only completed matches with both scores contribute,
// and only when both sides are in the team set. The result is a strict total
// order: points desc, goal difference desc, goals for desc, then team id as
// the deterministic fallback so fully tied stat lines still rank uniquely.
//
// Compute is pure; calling it twice over the same inputs yields identical
// output.
func Compute(seasonID string, teamIDs []string, matches []match.Match, rules season.ScoringRules) []Row {
	totals := make(map[string]*Row, len(teamIDs))
	order := make([]string, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if teamID == "" {
			continue
		}
		if _, ok := totals[teamID]; ok {
			continue
		}
		totals[teamID] = &Row{SeasonID: seasonID, TeamID: teamID}
		order = append(order, teamID)
	}

	for _, m := range matches {
		if !m.CountsForStandings() {
			continue
		}
		home, homeOK := totals[m.HomeTeamID]
		away, awayOK := totals[m.AwayTeamID]
		if !homeOK || !awayOK {
			continue
		}

		homeScore := *m.HomeScore
		awayScore := *m.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Won++
			home.Points += rules.Win
			away.Lost++
			away.Points += rules.Loss
		case homeScore < awayScore:
			away.Won++
			away.Points += rules.Win
			home.Lost++
			home.Points += rules.Loss
		default:
			home.Drawn++
			away.Drawn++
			home.Points += rules.Draw
			away.Points += rules.Draw
		}
	}

	rows := make([]Row, 0, len(order))
	for _, teamID := range order {
		row := totals[teamID]
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.TeamID < b.TeamID
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows
}
