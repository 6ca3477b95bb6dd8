package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
)

// EligibilityGuard concentrates the join preconditions so submission and
// approval agree on one rule set. Its capacity check is advisory; the
// authoritative count runs inside the approval transaction.
type EligibilityGuard struct {
	requests      joinrequest.Repository
	registrations registration.Repository
}

func NewEligibilityGuard(requests joinrequest.Repository, registrations registration.Repository) *EligibilityGuard {
	return &EligibilityGuard{
		requests:      requests,
		registrations: registrations,
	}
}

// CheckSubmission verifies that the team may ask to join the league's season
// at the given instant.
func (g *EligibilityGuard) CheckSubmission(ctx context.Context, lg league.League, sn season.Season, teamID string, now time.Time) error {
	if !lg.Active || !lg.Public {
		return fmt.Errorf("%w: league=%s", ErrLeagueNotPublic, lg.ID)
	}
	if lg.DeadlinePassed(now) {
		return fmt.Errorf("%w: league=%s deadline=%s", ErrDeadlinePassed, lg.ID, lg.RegistrationDeadline.Format(time.RFC3339))
	}
	if sn.Status.Terminal() {
		return fmt.Errorf("%w: season=%s is %s", ErrPreconditionFailed, sn.ID, sn.Status)
	}
	if sn.Status != season.StatusRegistration {
		return fmt.Errorf("%w: season=%s is not open for registration", ErrPreconditionFailed, sn.ID)
	}

	if limit := effectiveCapacity(lg, sn); limit > 0 {
		count, err := g.registrations.CountActiveBySeason(ctx, sn.ID)
		if err != nil {
			return fmt.Errorf("count registrations: %w", err)
		}
		if count >= limit {
			return fmt.Errorf("%w: season=%s capacity=%d", registration.ErrCapacityExceeded, sn.ID, limit)
		}
	}

	if existing, exists, err := g.registrations.FindActiveByTeamAndLeague(ctx, teamID, lg.ID); err != nil {
		return fmt.Errorf("find registration: %w", err)
	} else if exists {
		return fmt.Errorf("%w: team=%s league=%s holds a %s registration", registration.ErrAlreadyRegistered, teamID, lg.ID, existing.Status)
	}

	if existing, exists, err := g.requests.FindActiveByTeamAndLeague(ctx, teamID, lg.ID, now); err != nil {
		return fmt.Errorf("find pending request: %w", err)
	} else if exists {
		return fmt.Errorf("%w: team=%s league=%s has a %s request", joinrequest.ErrDuplicatePending, teamID, lg.ID, existing.Status)
	}

	return nil
}

// effectiveCapacity resolves the team cap for a season: the season's own cap
// wins, the league cap applies otherwise, zero means uncapped.
func effectiveCapacity(lg league.League, sn season.Season) int {
	if sn.MaxTeams > 0 {
		return sn.MaxTeams
	}
	if lg.MaxTeams != nil && *lg.MaxTeams > 0 {
		return *lg.MaxTeams
	}
	return 0
}
