package standings

// Row is one team's derived rank-table entry for a season. Rows are never
// authored directly: the full set is recomputed and replaced as a unit.
type Row struct {
	SeasonID       string
	TeamID         string
	Position       int
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}
