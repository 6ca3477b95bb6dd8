package season

import (
	"fmt"
	"time"
)

// Status tracks where a season is in its competition lifecycle. It advances
// monotonically except for the suspend/cancel escapes.
type Status string

const (
	StatusDraft             Status = "draft"
	StatusRegistration      Status = "registration"
	StatusFixturesPending   Status = "fixtures_pending"
	StatusFixturesGenerated Status = "fixtures_generated"
	StatusActive            Status = "active"
	StatusPlayoffs          Status = "playoffs"
	StatusCompleted         Status = "completed"
	StatusSuspended         Status = "suspended"
	StatusCancelled         Status = "cancelled"
)

// FixturesStatus tracks the fixture set independently of the season status.
type FixturesStatus string

const (
	FixturesPending           FixturesStatus = "pending"
	FixturesGenerating        FixturesStatus = "generating"
	FixturesCompleted         FixturesStatus = "completed"
	FixturesError             FixturesStatus = "error"
	FixturesNeedsRegeneration FixturesStatus = "needs_regeneration"
)

// statusTransitions is the single allowed-transition table for Status.
// Suspend is an escape from any non-terminal state and resumes to the state
// it recorded; cancel is an escape to a terminal state.
var statusTransitions = map[Status][]Status{
	StatusDraft:             {StatusRegistration, StatusSuspended, StatusCancelled},
	StatusRegistration:      {StatusFixturesPending, StatusSuspended, StatusCancelled},
	StatusFixturesPending:   {StatusFixturesGenerated, StatusActive, StatusSuspended, StatusCancelled},
	StatusFixturesGenerated: {StatusActive, StatusFixturesPending, StatusSuspended, StatusCancelled},
	StatusActive:            {StatusPlayoffs, StatusCompleted, StatusSuspended, StatusCancelled},
	StatusPlayoffs:          {StatusCompleted, StatusSuspended, StatusCancelled},
	StatusSuspended:         {StatusDraft, StatusRegistration, StatusFixturesPending, StatusFixturesGenerated, StatusActive, StatusPlayoffs, StatusCancelled},
	StatusCompleted:         {},
	StatusCancelled:         {},
}

var fixturesTransitions = map[FixturesStatus][]FixturesStatus{
	FixturesPending:           {FixturesGenerating},
	FixturesGenerating:        {FixturesCompleted, FixturesError},
	FixturesCompleted:         {FixturesNeedsRegeneration, FixturesPending},
	FixturesError:             {FixturesGenerating, FixturesPending},
	FixturesNeedsRegeneration: {FixturesGenerating, FixturesPending},
}

func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the season status may move to target.
func (s Status) CanTransition(target Status) bool {
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (f FixturesStatus) Valid() bool {
	_, ok := fixturesTransitions[f]
	return ok
}

func (f FixturesStatus) CanTransition(target FixturesStatus) bool {
	for _, next := range fixturesTransitions[f] {
		if next == target {
			return true
		}
	}
	return false
}

// CanStartGeneration reports whether fixture generation may be triggered from
// the current fixtures status. Retry re-enters generating from error or
// needs_regeneration.
func (f FixturesStatus) CanStartGeneration() bool {
	switch f {
	case FixturesPending, FixturesError, FixturesNeedsRegeneration:
		return true
	default:
		return false
	}
}

// Season is one run of a league's competition with its own roster, fixtures
// and standings.
type Season struct {
	ID                   string
	LeagueID             string
	Name                 string
	Status               Status
	FixturesStatus       FixturesStatus
	MinTeams             int
	MaxTeams             int
	Rounds               int
	HomeAndAway          bool
	PointsForWin         *int
	PointsForDraw        *int
	PointsForLoss        *int
	RegisteredTeamsCount int
	TotalMatchesPlanned  int
	FixturesGeneratedAt  *time.Time
	StartDate            *time.Time
	EndDate              *time.Time
	CreatedAt            time.Time
}

const (
	DefaultPointsForWin  = 3
	DefaultPointsForDraw = 1
	DefaultPointsForLoss = 0
)

// ScoringRules are the points awarded per result when computing standings.
type ScoringRules struct {
	Win  int
	Draw int
	Loss int
}

func DefaultScoringRules() ScoringRules {
	return ScoringRules{Win: DefaultPointsForWin, Draw: DefaultPointsForDraw, Loss: DefaultPointsForLoss}
}

// Scoring resolves the effective rules: season-level overrides are
// authoritative, the 3/1/0 defaults apply only where a season leaves a value
// unset.
func (s Season) Scoring() ScoringRules {
	rules := DefaultScoringRules()
	if s.PointsForWin != nil {
		rules.Win = *s.PointsForWin
	}
	if s.PointsForDraw != nil {
		rules.Draw = *s.PointsForDraw
	}
	if s.PointsForLoss != nil {
		rules.Loss = *s.PointsForLoss
	}
	return rules
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("season league id is required")
	}
	if !s.Status.Valid() {
		return fmt.Errorf("season status %q is not valid", s.Status)
	}
	if !s.FixturesStatus.Valid() {
		return fmt.Errorf("season fixtures status %q is not valid", s.FixturesStatus)
	}
	if s.MinTeams < 2 {
		return fmt.Errorf("season min_teams must be at least 2")
	}
	if s.MaxTeams > 0 && s.MaxTeams < s.MinTeams {
		return fmt.Errorf("season max_teams must be >= min_teams")
	}
	if s.Rounds < 1 {
		return fmt.Errorf("season rounds must be at least 1")
	}

	return nil
}
