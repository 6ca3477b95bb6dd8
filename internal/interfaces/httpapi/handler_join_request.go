package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/usecase"
)

func (h *Handler) SubmitJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitJoinRequestRequest
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

	request, err := h.joinRequestService.Submit(ctx, principal, usecase.SubmitJoinRequestInput{
		TeamID:   req.TeamID,
		LeagueID: req.LeagueID,
		SeasonID: req.SeasonID,
		Message:  req.Message,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit join request failed",
			"team_id", req.TeamID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, joinRequestToDTO(request))
}

func (h *Handler) ApproveJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApproveJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requestID := r.PathValue("requestID")
	message, err := h.decodeReviewMessage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	request, err := h.joinRequestService.Approve(ctx, principal, requestID, message)
	if err != nil {
		h.logger.WarnContext(ctx, "approve join request failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) RejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requestID := r.PathValue("requestID")
	message, err := h.decodeReviewMessage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	request, err := h.joinRequestService.Reject(ctx, principal, requestID, message)
	if err != nil {
		h.logger.WarnContext(ctx, "reject join request failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) WithdrawJoinRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawJoinRequest")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	requestID := r.PathValue("requestID")
	request, err := h.joinRequestService.Withdraw(ctx, principal, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "withdraw join request failed", "request_id", requestID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestToDTO(request))
}

func (h *Handler) ListPendingJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPendingJoinRequests")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	items, err := h.joinRequestService.ListPendingByLeague(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list pending join requests failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestsToDTOs(items))
}

func (h *Handler) ListMyJoinRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyJoinRequests")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	items, err := h.joinRequestService.ListMine(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list my join requests failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, joinRequestsToDTOs(items))
}

// decodeReviewMessage reads the optional review body. An empty body is a
// decision without a message.
func (h *Handler) decodeReviewMessage(r *http.Request) (string, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return "", nil
	}

	var req reviewJoinRequestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return "", fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req.Message, nil
}

type submitJoinRequestRequest struct {
	TeamID   string `json:"teamId" validate:"required"`
	LeagueID string `json:"leagueId" validate:"required"`
	SeasonID string `json:"seasonId" validate:"required"`
	Message  string `json:"message" validate:"max=500"`
}

type reviewJoinRequestRequest struct {
	Message string `json:"message" validate:"max=500"`
}

type joinRequestDTO struct {
	ID            string `json:"id"`
	TeamID        string `json:"teamId"`
	LeagueID      string `json:"leagueId"`
	SeasonID      string `json:"seasonId"`
	RequestedBy   string `json:"requestedBy"`
	Message       string `json:"message,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	ExpiresAt     string `json:"expiresAt"`
	ReviewedBy    string `json:"reviewedBy,omitempty"`
	ReviewedAt    string `json:"reviewedAt,omitempty"`
	ReviewMessage string `json:"reviewMessage,omitempty"`
}

func joinRequestToDTO(v joinrequest.JoinRequest) joinRequestDTO {
	dto := joinRequestDTO{
		ID:          v.ID,
		TeamID:      v.TeamID,
		LeagueID:    v.LeagueID,
		SeasonID:    v.SeasonID,
		RequestedBy: v.RequestedBy,
		Message:     v.Message,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:   v.ExpiresAt.UTC().Format(time.RFC3339),
		ReviewedAt:  formatTimePtr(v.ReviewedAt),
	}
	if v.ReviewedBy != nil {
		dto.ReviewedBy = *v.ReviewedBy
	}
	if v.ReviewMessage != nil {
		dto.ReviewMessage = *v.ReviewMessage
	}
	return dto
}

func joinRequestsToDTOs(items []joinrequest.JoinRequest) []joinRequestDTO {
	out := make([]joinRequestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, joinRequestToDTO(item))
	}
	return out
}
