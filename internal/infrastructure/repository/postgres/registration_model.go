package postgres

import (
	"time"

	"github.com/pitchside/leagueday/internal/domain/registration"
)

type registrationTableModel struct {
	ID        string    `db:"id"`
	SeasonID  string    `db:"season_id"`
	LeagueID  string    `db:"league_id"`
	TeamID    string    `db:"team_id"`
	Status    string    `db:"status"`
	Seed      int       `db:"seed"`
	CreatedAt time.Time `db:"created_at"`
}

func (m registrationTableModel) toDomain() registration.Registration {
	return registration.Registration{
		ID:        m.ID,
		SeasonID:  m.SeasonID,
		LeagueID:  m.LeagueID,
		TeamID:    m.TeamID,
		Status:    registration.Status(m.Status),
		Seed:      m.Seed,
		CreatedAt: m.CreatedAt,
	}
}

func registrationToTableModel(r registration.Registration) registrationTableModel {
	return registrationTableModel{
		ID:        r.ID,
		SeasonID:  r.SeasonID,
		LeagueID:  r.LeagueID,
		TeamID:    r.TeamID,
		Status:    string(r.Status),
		Seed:      r.Seed,
		CreatedAt: r.CreatedAt,
	}
}
