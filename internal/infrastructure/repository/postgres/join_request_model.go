package postgres

import (
	"database/sql"
	"time"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
)

type joinRequestTableModel struct {
	ID            string         `db:"id"`
	TeamID        string         `db:"team_id"`
	LeagueID      string         `db:"league_id"`
	SeasonID      string         `db:"season_id"`
	RequestedBy   string         `db:"requested_by"`
	Message       string         `db:"message"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	ExpiresAt     time.Time      `db:"expires_at"`
	ReviewedBy    sql.NullString `db:"reviewed_by"`
	ReviewedAt    *time.Time     `db:"reviewed_at"`
	ReviewMessage sql.NullString `db:"review_message"`
}

func (m joinRequestTableModel) toDomain() joinrequest.JoinRequest {
	return joinrequest.JoinRequest{
		ID:            m.ID,
		TeamID:        m.TeamID,
		LeagueID:      m.LeagueID,
		SeasonID:      m.SeasonID,
		RequestedBy:   m.RequestedBy,
		Message:       m.Message,
		Status:        joinrequest.Status(m.Status),
		CreatedAt:     m.CreatedAt,
		ExpiresAt:     m.ExpiresAt,
		ReviewedBy:    stringPtr(m.ReviewedBy),
		ReviewedAt:    m.ReviewedAt,
		ReviewMessage: stringPtr(m.ReviewMessage),
	}
}

func joinRequestToTableModel(r joinrequest.JoinRequest) joinRequestTableModel {
	return joinRequestTableModel{
		ID:            r.ID,
		TeamID:        r.TeamID,
		LeagueID:      r.LeagueID,
		SeasonID:      r.SeasonID,
		RequestedBy:   r.RequestedBy,
		Message:       r.Message,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		ExpiresAt:     r.ExpiresAt,
		ReviewedBy:    nullString(r.ReviewedBy),
		ReviewedAt:    r.ReviewedAt,
		ReviewMessage: nullString(r.ReviewMessage),
	}
}
