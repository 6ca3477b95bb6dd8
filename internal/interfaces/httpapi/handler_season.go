package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leagueday/internal/domain/match"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/usecase"
)

func (h *Handler) ListSeasonsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonsByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	seasons, err := h.seasonService.ListByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, sn := range seasons {
		items = append(items, seasonToDTO(sn))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	seasonID := r.PathValue("seasonID")
	item, err := h.seasonService.GetByID(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) TransitionSeasonStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransitionSeasonStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonID := r.PathValue("seasonID")
	var req transitionSeasonRequest
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

	item, err := h.seasonService.TransitionStatus(ctx, principal, seasonID, season.Status(req.Status))
	if err != nil {
		h.logger.WarnContext(ctx, "season transition failed",
			"season_id", seasonID, "target", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) GenerateSeasonFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSeasonFixtures")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonID := r.PathValue("seasonID")
	matches, err := h.seasonService.GenerateFixtures(ctx, principal, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchesToDTOs(matches))
}

func (h *Handler) DeleteSeasonFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeasonFixtures")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	seasonID := r.PathValue("seasonID")
	if err := h.seasonService.DeleteFixtures(ctx, principal, seasonID); err != nil {
		h.logger.WarnContext(ctx, "delete fixtures failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"seasonId": seasonID, "fixtures": "deleted"})
}

type transitionSeasonRequest struct {
	Status string `json:"status" validate:"required"`
}

type seasonDTO struct {
	ID                   string `json:"id"`
	LeagueID             string `json:"leagueId"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	FixturesStatus       string `json:"fixturesStatus"`
	MinTeams             int    `json:"minTeams"`
	MaxTeams             int    `json:"maxTeams,omitempty"`
	Rounds               int    `json:"rounds"`
	HomeAndAway          bool   `json:"homeAndAway"`
	RegisteredTeamsCount int    `json:"registeredTeamsCount"`
	TotalMatchesPlanned  int    `json:"totalMatchesPlanned"`
	FixturesGeneratedAt  string `json:"fixturesGeneratedAt,omitempty"`
	StartDate            string `json:"startDate,omitempty"`
	EndDate              string `json:"endDate,omitempty"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:                   v.ID,
		LeagueID:             v.LeagueID,
		Name:                 v.Name,
		Status:               string(v.Status),
		FixturesStatus:       string(v.FixturesStatus),
		MinTeams:             v.MinTeams,
		MaxTeams:             v.MaxTeams,
		Rounds:               v.Rounds,
		HomeAndAway:          v.HomeAndAway,
		RegisteredTeamsCount: v.RegisteredTeamsCount,
		TotalMatchesPlanned:  v.TotalMatchesPlanned,
		FixturesGeneratedAt:  formatTimePtr(v.FixturesGeneratedAt),
		StartDate:            formatTimePtr(v.StartDate),
		EndDate:              formatTimePtr(v.EndDate),
	}
}

type matchDTO struct {
	ID             string `json:"id"`
	SeasonID       string `json:"seasonId"`
	HomeTeamID     string `json:"homeTeamId"`
	AwayTeamID     string `json:"awayTeamId"`
	MatchdayNumber int    `json:"matchdayNumber"`
	ScheduledAt    string `json:"scheduledAt"`
	Status         string `json:"status"`
	HomeScore      *int   `json:"homeScore,omitempty"`
	AwayScore      *int   `json:"awayScore,omitempty"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:             v.ID,
		SeasonID:       v.SeasonID,
		HomeTeamID:     v.HomeTeamID,
		AwayTeamID:     v.AwayTeamID,
		MatchdayNumber: v.MatchdayNumber,
		ScheduledAt:    v.ScheduledAt.UTC().Format(time.RFC3339),
		Status:         string(v.Status),
		HomeScore:      v.HomeScore,
		AwayScore:      v.AwayScore,
	}
}

func matchesToDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}
