package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/domain/standings"
	qb "github.com/pitchside/leagueday/internal/platform/querybuilder"
)

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) ListBySeason(ctx context.Context, seasonID string) ([]standings.Row, error) {
	query, args, err := qb.Select("*").From("season_standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings by season: %w", err)
	}

	out := make([]standings.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *StandingsRepository) ReplaceBySeason(ctx context.Context, seasonID string, rows []standings.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteSeasonStandingsInTx(ctx, tx, seasonID); err != nil {
		return err
	}

	if len(rows) > 0 {
		insert := qb.InsertInto("season_standings").Columns(
			"season_id", "team_id", "position", "played", "won", "drawn",
			"lost", "goals_for", "goals_against", "goal_difference", "points",
		)
		for _, row := range rows {
			insert = insert.Values(
				row.SeasonID, row.TeamID, row.Position, row.Played, row.Won,
				row.Drawn, row.Lost, row.GoalsFor, row.GoalsAgainst,
				row.GoalDifference, row.Points,
			)
		}

		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}

	return nil
}

func deleteSeasonStandingsInTx(ctx context.Context, tx *sqlx.Tx, seasonID string) error {
	query, args, err := qb.DeleteFrom("season_standings").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete standings by season: %w", err)
	}

	return nil
}
