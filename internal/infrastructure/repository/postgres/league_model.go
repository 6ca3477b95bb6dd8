package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/leagueday/internal/domain/league"
)

type leagueTableModel struct {
	ID                   string        `db:"id"`
	Name                 string        `db:"name"`
	Sport                string        `db:"sport"`
	CreatedBy            string        `db:"created_by"`
	Active               bool          `db:"active"`
	Public               bool          `db:"public"`
	AutoApprove          bool          `db:"auto_approve"`
	MaxTeams             sql.NullInt64 `db:"max_teams"`
	RegistrationDeadline *time.Time    `db:"registration_deadline"`
	CreatedAt            time.Time     `db:"created_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:                   m.ID,
		Name:                 m.Name,
		Sport:                m.Sport,
		CreatedBy:            m.CreatedBy,
		Active:               m.Active,
		Public:               m.Public,
		AutoApprove:          m.AutoApprove,
		MaxTeams:             intPtr(m.MaxTeams),
		RegistrationDeadline: m.RegistrationDeadline,
		CreatedAt:            m.CreatedAt,
	}
}
