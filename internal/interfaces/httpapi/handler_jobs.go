package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leagueday/internal/usecase"
)

// RunExpireJoinRequestsJob sweeps every league with overdue pending requests.
// The route sits behind the internal job token, not user auth.
func (h *Handler) RunExpireJoinRequestsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunExpireJoinRequestsJob")
	defer span.End()

	result, err := h.sweeper.SweepOnce(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "join request sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepResultDTO{
		LeagueCount:  result.LeagueCount,
		ExpiredCount: result.ExpiredCount,
		FailedCount:  result.FailedCount,
	})
}

func (h *Handler) RunRecomputeStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeStandingsJob")
	defer span.End()

	var req recomputeStandingsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.standingsService.RecomputeLeague(ctx, req.LeagueID); err != nil {
		h.logger.ErrorContext(ctx, "recompute league standings failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"leagueId": req.LeagueID, "standings": "recomputed"})
}

type recomputeStandingsRequest struct {
	LeagueID string `json:"leagueId" validate:"required"`
}

type sweepResultDTO struct {
	LeagueCount  int `json:"leagueCount"`
	ExpiredCount int `json:"expiredCount"`
	FailedCount  int `json:"failedCount"`
}
