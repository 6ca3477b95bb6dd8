// Package roundrobin builds season fixture sets with the circle scheduling
// method: every team meets every other team once per cycle, spread over
// matchdays so no team plays twice on the same day.
package roundrobin

import (
	"fmt"
	"time"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/platform/id"
)

const matchdaySpacing = 7 * 24 * time.Hour

type Generator struct {
	ids id.Generator
	now func() time.Time
}

func NewGenerator(ids id.Generator) *Generator {
	return &Generator{
		ids: ids,
		now: time.Now,
	}
}

// Generate produces the complete fixture set for the season. The number of
// matches is n(n-1)/2 per cycle, with one cycle per round and a doubled,
// venue-swapped cycle when the season plays home and away.
func (g *Generator) Generate(sn season.Season, teamIDs []string) ([]match.Match, error) {
	teams := dedupe(teamIDs)
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("fixture generation needs at least 2 teams, got %d", n)
	}

	rounds := sn.Rounds
	if rounds < 1 {
		rounds = 1
	}
	legs := 1
	if sn.HomeAndAway {
		legs = 2
	}

	now := g.now()
	anchor := now
	if sn.StartDate != nil {
		anchor = *sn.StartDate
	}

	// Odd team counts get a bye slot; pairings against it are skipped.
	rotation := make([]string, 0, n+1)
	rotation = append(rotation, teams...)
	if n%2 == 1 {
		rotation = append(rotation, "")
	}
	size := len(rotation)
	daysPerCycle := size - 1

	expected := n * (n - 1) / 2 * rounds * legs
	out := make([]match.Match, 0, expected)

	matchday := 0
	for cycle := 0; cycle < rounds*legs; cycle++ {
		mirror := sn.HomeAndAway && cycle%2 == 1
		slots := make([]string, size)
		copy(slots, rotation)

		for day := 0; day < daysPerCycle; day++ {
			matchday++
			scheduledAt := anchor.Add(time.Duration(matchday-1) * matchdaySpacing)

			for i := 0; i < size/2; i++ {
				home, away := slots[i], slots[size-1-i]
				if home == "" || away == "" {
					continue
				}
				// Alternate venues down the schedule so the fixed slot does
				// not host every matchday; a mirrored cycle swaps once more.
				if day%2 == 1 {
					home, away = away, home
				}
				if mirror {
					home, away = away, home
				}

				matchID, err := g.ids.NewID("match")
				if err != nil {
					return nil, fmt.Errorf("generate match id: %w", err)
				}
				out = append(out, match.Match{
					ID:             matchID,
					SeasonID:       sn.ID,
					HomeTeamID:     home,
					AwayTeamID:     away,
					MatchdayNumber: matchday,
					ScheduledAt:    scheduledAt,
					Status:         match.StatusScheduled,
					CreatedAt:      now,
				})
			}

			slots = rotate(slots)
		}
	}

	if len(out) != expected {
		return nil, fmt.Errorf("generated %d matches, expected %d", len(out), expected)
	}
	return out, nil
}

// rotate advances the circle: the first slot stays fixed, every other slot
// moves one position clockwise.
func rotate(slots []string) []string {
	size := len(slots)
	next := make([]string, size)
	next[0] = slots[0]
	next[1] = slots[size-1]
	copy(next[2:], slots[1:size-1])
	return next
}

func dedupe(teamIDs []string) []string {
	seen := make(map[string]struct{}, len(teamIDs))
	out := make([]string, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if teamID == "" {
			continue
		}
		if _, ok := seen[teamID]; ok {
			continue
		}
		seen[teamID] = struct{}{}
		out = append(out, teamID)
	}
	return out
}
