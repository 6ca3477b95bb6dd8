package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/domain/match"
	qb "github.com/pitchside/leagueday/internal/platform/querybuilder"
)

var completableMatchStatuses = []any{
	string(match.StatusScheduled),
	string(match.StatusLive),
	string(match.StatusPostponed),
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("matchday_number", "scheduled_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) ReplaceBySeason(ctx context.Context, seasonID string, matches []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteSeasonMatchesInTx(ctx, tx, seasonID); err != nil {
		return err
	}

	if len(matches) > 0 {
		insert := qb.InsertInto("matches").Columns(
			"id", "season_id", "home_team_id", "away_team_id",
			"matchday_number", "scheduled_at", "status",
			"home_score", "away_score", "created_at",
		)
		for _, m := range matches {
			row := matchToTableModel(m)
			insert = insert.Values(
				row.ID, row.SeasonID, row.HomeTeamID, row.AwayTeamID,
				row.MatchdayNumber, row.ScheduledAt, row.Status,
				row.HomeScore, row.AwayScore, row.CreatedAt,
			)
		}

		query, args, err := insert.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace matches tx: %w", err)
	}

	return nil
}

// DeleteBySeason drops the season's matches and its standings rows in one
// transaction, so a reader cannot see a ranking table for fixtures that no
// longer exist.
func (r *MatchRepository) DeleteBySeason(ctx context.Context, seasonID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx delete matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteSeasonMatchesInTx(ctx, tx, seasonID); err != nil {
		return err
	}
	if err := deleteSeasonStandingsInTx(ctx, tx, seasonID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete matches tx: %w", err)
	}

	return nil
}

func deleteSeasonMatchesInTx(ctx context.Context, tx *sqlx.Tx, seasonID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches by season: %w", err)
	}

	return nil
}

func (r *MatchRepository) RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("status", string(match.StatusCompleted)).
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Where(
			qb.Eq("id", matchID),
			qb.In("status", completableMatchStatuses),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build record result query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return match.Match{}, fmt.Errorf("record match result: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return match.Match{}, fmt.Errorf("rows affected record match result: %w", err)
	}
	if affected == 0 {
		// Zero rows means either no such match or one whose status forbids
		// completion. Re-read to report the right failure.
		_, found, err := r.GetByID(ctx, matchID)
		if err != nil {
			return match.Match{}, err
		}
		if !found {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, match.ErrAlreadyResolved
	}

	updated, found, err := r.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if !found {
		return match.Match{}, match.ErrNotFound
	}

	return updated, nil
}
