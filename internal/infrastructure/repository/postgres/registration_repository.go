package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/domain/registration"
	qb "github.com/pitchside/leagueday/internal/platform/querybuilder"
)

var activeRegistrationStatuses = []any{
	string(registration.StatusRegistered),
	string(registration.StatusConfirmed),
}

type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) CreateWithinCapacity(ctx context.Context, reg registration.Registration, maxTeams int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create registration: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertRegistrationWithinCapacity(ctx, tx, reg, maxTeams); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create registration tx: %w", err)
	}

	return nil
}

// insertRegistrationWithinCapacity counts and inserts under a season-scoped
// advisory lock so two concurrent approvals cannot both pass a capacity
// check that only one slot remains for.
func insertRegistrationWithinCapacity(ctx context.Context, tx *sqlx.Tx, reg registration.Registration, maxTeams int) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "season_registrations:"+reg.SeasonID); err != nil {
		return fmt.Errorf("acquire season registration lock: %w", err)
	}

	if maxTeams > 0 {
		countQuery, countArgs, err := qb.Select("COUNT(*)").From("season_registrations").
			Where(
				qb.Eq("season_id", reg.SeasonID),
				qb.In("status", activeRegistrationStatuses),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build count registrations query: %w", err)
		}

		var count int
		if err := tx.GetContext(ctx, &count, countQuery, countArgs...); err != nil {
			return fmt.Errorf("count active registrations: %w", err)
		}
		if count >= maxTeams {
			return registration.ErrCapacityExceeded
		}
	}

	insertQuery, insertArgs, err := qb.InsertModel("season_registrations", registrationToTableModel(reg), "")
	if err != nil {
		return fmt.Errorf("build insert registration query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return registration.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}

	return nil
}

func (r *RegistrationRepository) ListActiveBySeason(ctx context.Context, seasonID string) ([]registration.Registration, error) {
	query, args, err := qb.Select("*").From("season_registrations").
		Where(
			qb.Eq("season_id", seasonID),
			qb.In("status", activeRegistrationStatuses),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select registrations query: %w", err)
	}

	var rows []registrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select registrations by season: %w", err)
	}

	out := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RegistrationRepository) CountActiveBySeason(ctx context.Context, seasonID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("season_registrations").
		Where(
			qb.Eq("season_id", seasonID),
			qb.In("status", activeRegistrationStatuses),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count registrations query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count registrations by season: %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) FindActiveByTeamAndLeague(ctx context.Context, teamID, leagueID string) (registration.Registration, bool, error) {
	query, args, err := qb.Select("*").From("season_registrations").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("league_id", leagueID),
			qb.In("status", activeRegistrationStatuses),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return registration.Registration{}, false, fmt.Errorf("build find registration query: %w", err)
	}

	var row registrationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return registration.Registration{}, false, nil
		}
		return registration.Registration{}, false, fmt.Errorf("find registration by team and league: %w", err)
	}

	return row.toDomain(), true, nil
}
