package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/registration"
	qb "github.com/pitchside/leagueday/internal/platform/querybuilder"
)

// JoinRequestRepository stores join requests. Duplicate pending requests are
// blocked by a partial unique index on (team_id, league_id) where the status
// is pending, so concurrent submissions cannot slip past the service guard.
type JoinRequestRepository struct {
	db *sqlx.DB
}

func NewJoinRequestRepository(db *sqlx.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, request joinrequest.JoinRequest) error {
	query, args, err := qb.InsertModel("join_requests", joinRequestToTableModel(request), "")
	if err != nil {
		return fmt.Errorf("build insert join request query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return joinrequest.ErrDuplicatePending
		}
		return fmt.Errorf("insert join request: %w", err)
	}

	return nil
}

func (r *JoinRequestRepository) GetByID(ctx context.Context, requestID string) (joinrequest.JoinRequest, bool, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(qb.Eq("id", requestID)).
		ToSQL()
	if err != nil {
		return joinrequest.JoinRequest{}, false, fmt.Errorf("build get join request query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return joinrequest.JoinRequest{}, false, nil
		}
		return joinrequest.JoinRequest{}, false, fmt.Errorf("get join request by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *JoinRequestRepository) FindActiveByTeamAndLeague(ctx context.Context, teamID, leagueID string, now time.Time) (joinrequest.JoinRequest, bool, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("league_id", leagueID),
			qb.Eq("status", string(joinrequest.StatusPending)),
			qb.Expr("expires_at >= ?", now),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return joinrequest.JoinRequest{}, false, fmt.Errorf("build find active join request query: %w", err)
	}

	var row joinRequestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return joinrequest.JoinRequest{}, false, nil
		}
		return joinrequest.JoinRequest{}, false, fmt.Errorf("find active join request: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *JoinRequestRepository) ListPendingByLeague(ctx context.Context, leagueID string, now time.Time) ([]joinrequest.JoinRequest, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", string(joinrequest.StatusPending)),
			qb.Expr("expires_at >= ?", now),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending join requests query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending join requests: %w", err)
	}

	out := make([]joinrequest.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *JoinRequestRepository) ListByRequester(ctx context.Context, userID string) ([]joinrequest.JoinRequest, error) {
	query, args, err := qb.Select("*").From("join_requests").
		Where(qb.Eq("requested_by", userID)).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list join requests by requester query: %w", err)
	}

	var rows []joinRequestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list join requests by requester: %w", err)
	}

	out := make([]joinrequest.JoinRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *JoinRequestRepository) ApproveAndRegister(ctx context.Context, requestID string, review joinrequest.Review, reg registration.Registration, maxTeams int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx approve join request: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Lock the request row so a racing decision waits, then re-check that it
	// is still pending and inside the expiry window.
	lockQuery, lockArgs, err := qb.Select("status", "expires_at").From("join_requests").
		Where(qb.Eq("id", requestID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock join request query: %w", err)
	}

	var current struct {
		Status    string    `db:"status"`
		ExpiresAt time.Time `db:"expires_at"`
	}
	if err := tx.GetContext(ctx, &current, lockQuery, lockArgs...); err != nil {
		if isNotFound(err) {
			return joinrequest.ErrNotFound
		}
		return fmt.Errorf("lock join request: %w", err)
	}
	if current.Status != string(joinrequest.StatusPending) || current.ExpiresAt.Before(review.ReviewedAt) {
		return joinrequest.ErrNotPending
	}

	if err := insertRegistrationWithinCapacity(ctx, tx, reg, maxTeams); err != nil {
		return err
	}

	if err := resolveInTx(ctx, tx, requestID, joinrequest.StatusApproved, review); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit approve join request tx: %w", err)
	}

	return nil
}

func (r *JoinRequestRepository) Resolve(ctx context.Context, requestID string, target joinrequest.Status, review joinrequest.Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx resolve join request: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := resolveInTx(ctx, tx, requestID, target, review); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit resolve join request tx: %w", err)
	}

	return nil
}

// resolveInTx moves a pending request to a terminal status. The pending
// predicate sits in the WHERE clause, so a request that was decided or
// expired in the meantime simply affects zero rows.
func resolveInTx(ctx context.Context, tx *sqlx.Tx, requestID string, target joinrequest.Status, review joinrequest.Review) error {
	update := qb.Update("join_requests").
		Set("status", string(target)).
		Set("reviewed_by", review.ReviewedBy).
		Set("reviewed_at", review.ReviewedAt).
		Where(
			qb.Eq("id", requestID),
			qb.Eq("status", string(joinrequest.StatusPending)),
			qb.Expr("expires_at >= ?", review.ReviewedAt),
		)
	if review.Message != "" {
		update = update.Set("review_message", review.Message)
	}

	query, args, err := update.ToSQL()
	if err != nil {
		return fmt.Errorf("build resolve join request query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolve join request: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected resolve join request: %w", err)
	}
	if affected == 0 {
		return joinrequest.ErrNotPending
	}

	return nil
}

func (r *JoinRequestRepository) ExpireDue(ctx context.Context, leagueID string, now time.Time) (int, error) {
	query, args, err := qb.Update("join_requests").
		Set("status", string(joinrequest.StatusExpired)).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("status", string(joinrequest.StatusPending)),
			qb.Lt("expires_at", now),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build expire join requests query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expire join requests: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected expire join requests: %w", err)
	}

	return int(affected), nil
}

func (r *JoinRequestRepository) ListLeagueIDsWithDuePending(ctx context.Context, now time.Time) ([]string, error) {
	query, args, err := qb.Select("DISTINCT league_id").From("join_requests").
		Where(
			qb.Eq("status", string(joinrequest.StatusPending)),
			qb.Lt("expires_at", now),
		).
		OrderBy("league_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list due leagues query: %w", err)
	}

	var leagueIDs []string
	if err := r.db.SelectContext(ctx, &leagueIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues with due join requests: %w", err)
	}

	return leagueIDs, nil
}
