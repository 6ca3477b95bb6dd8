package usecase

import (
	"fmt"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/user"
)

// requireLeagueAdmin allows the league creator and principals carrying an
// administrative role.
func requireLeagueAdmin(actor user.Principal, lg league.League) error {
	if actor.UserID == "" {
		return fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}
	if actor.UserID == lg.CreatedBy || actor.HasAdminRole() {
		return nil
	}
	return fmt.Errorf("%w: user=%s is not an admin of league=%s", ErrUnauthorized, actor.UserID, lg.ID)
}
