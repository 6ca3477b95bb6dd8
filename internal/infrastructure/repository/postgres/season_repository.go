package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/domain/season"
	qb "github.com/pitchside/leagueday/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID string) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season by id query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("get season by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListByLeague(ctx context.Context, leagueID string) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons by league: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SeasonRepository) CompareAndSetStatus(ctx context.Context, seasonID string, from, to season.Status) (bool, error) {
	query, args, err := qb.Update("seasons").
		Set("status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", seasonID),
			qb.Eq("status", string(from)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set season status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set season status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected set season status: %w", err)
	}

	return affected == 1, nil
}

func (r *SeasonRepository) CompareAndSetFixturesStatus(ctx context.Context, seasonID string, from, to season.FixturesStatus) (bool, error) {
	query, args, err := qb.Update("seasons").
		Set("fixtures_status", string(to)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", seasonID),
			qb.Eq("fixtures_status", string(from)),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set fixtures status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set fixtures status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected set fixtures status: %w", err)
	}

	return affected == 1, nil
}

func (r *SeasonRepository) MarkFixturesGenerated(ctx context.Context, seasonID string, generatedAt time.Time, totalMatches int) error {
	query, args, err := qb.Update("seasons").
		Set("fixtures_status", string(season.FixturesCompleted)).
		Set("fixtures_generated_at", generatedAt).
		Set("total_matches_planned", totalMatches).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark fixtures generated query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark fixtures generated: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected mark fixtures generated: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark fixtures generated: season %s not found", seasonID)
	}

	return nil
}

func (r *SeasonRepository) SetRegisteredTeamsCount(ctx context.Context, seasonID string, count int) error {
	query, args, err := qb.Update("seasons").
		Set("registered_teams_count", count).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set registered teams count query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set registered teams count: %w", err)
	}

	return nil
}
