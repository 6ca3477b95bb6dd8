package standings

import (
	"reflect"
	"testing"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
)

func intPtr(v int) *int { return &v }

func completed(id, home, away string, homeScore, awayScore int) match.Match {
	return match.Match{
		ID:         id,
		SeasonID:   "s1",
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     match.StatusCompleted,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func TestCompute_ThreeTeamTable(t *testing.T) {
	t.Parallel()

	teams := []string{"team-a", "team-b", "team-c"}
	matches := []match.Match{
		completed("m1", "team-a", "team-b", 2, 1),
		completed("m2", "team-b", "team-c", 0, 0),
		completed("m3", "team-a", "team-c", 1, 1),
	}

	rows := Compute("s1", teams, matches, season.DefaultScoringRules())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []Row{
		{SeasonID: "s1", TeamID: "team-a", Position: 1, Played: 2, Won: 1, Drawn: 1, GoalsFor: 3, GoalsAgainst: 2, GoalDifference: 1, Points: 4},
		{SeasonID: "s1", TeamID: "team-c", Position: 2, Played: 2, Drawn: 2, GoalsFor: 1, GoalsAgainst: 1, GoalDifference: 0, Points: 2},
		{SeasonID: "s1", TeamID: "team-b", Position: 3, Played: 2, Drawn: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1, Points: 1},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected table:\n got %+v\nwant %+v", rows, want)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	t.Parallel()

	teams := []string{"team-b", "team-a", "team-c", "team-d"}
	matches := []match.Match{
		completed("m1", "team-a", "team-b", 2, 0),
		completed("m2", "team-c", "team-d", 2, 0),
		completed("m3", "team-a", "team-c", 1, 1),
	}

	first := Compute("s1", teams, matches, season.DefaultScoringRules())
	second := Compute("s1", teams, matches, season.DefaultScoringRules())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("compute is not idempotent:\n first %+v\nsecond %+v", first, second)
	}
}

func TestCompute_FullyTiedTeamsFallBackToTeamID(t *testing.T) {
	t.Parallel()

	// No completed matches at all: every stat line is identical, the table
	// must still be a strict total order.
	teams := []string{"zeta", "alpha", "mid"}
	rows := Compute("s1", teams, nil, season.DefaultScoringRules())

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	wantOrder := []string{"alpha", "mid", "zeta"}
	for i, teamID := range wantOrder {
		if rows[i].TeamID != teamID {
			t.Fatalf("position %d: got %s, want %s", i+1, rows[i].TeamID, teamID)
		}
		if rows[i].Position != i+1 {
			t.Fatalf("position %d: got position %d", i+1, rows[i].Position)
		}
	}
}

func TestCompute_SkipsNonCountingMatches(t *testing.T) {
	t.Parallel()

	live := completed("m2", "team-a", "team-b", 3, 0)
	live.Status = match.StatusLive
	missingScore := completed("m3", "team-a", "team-b", 0, 0)
	missingScore.AwayScore = nil
	strangerMatch := completed("m4", "team-a", "intruder", 9, 0)

	matches := []match.Match{
		completed("m1", "team-a", "team-b", 1, 0),
		live,
		missingScore,
		strangerMatch,
	}

	rows := Compute("s1", []string{"team-a", "team-b"}, matches, season.DefaultScoringRules())
	if rows[0].TeamID != "team-a" || rows[0].Played != 1 || rows[0].Points != 3 {
		t.Fatalf("unexpected leader row: %+v", rows[0])
	}
	if rows[1].TeamID != "team-b" || rows[1].Played != 1 || rows[1].Points != 0 {
		t.Fatalf("unexpected runner-up row: %+v", rows[1])
	}
}

func TestCompute_SeasonScoringOverrides(t *testing.T) {
	t.Parallel()

	s := season.Season{PointsForWin: intPtr(2), PointsForDraw: intPtr(0)}
	rules := s.Scoring()
	if rules.Win != 2 || rules.Draw != 0 || rules.Loss != season.DefaultPointsForLoss {
		t.Fatalf("unexpected effective rules: %+v", rules)
	}

	rows := Compute("s1", []string{"team-a", "team-b"}, []match.Match{
		completed("m1", "team-a", "team-b", 1, 0),
	}, rules)
	if rows[0].Points != 2 {
		t.Fatalf("expected 2 points for a win, got %d", rows[0].Points)
	}
}

func TestCompute_EmptySeason(t *testing.T) {
	t.Parallel()

	rows := Compute("s1", nil, nil, season.DefaultScoringRules())
	if len(rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(rows))
	}
}
