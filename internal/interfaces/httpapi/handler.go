package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/usecase"
)

type Handler struct {
	leagueService      *usecase.LeagueService
	seasonService      *usecase.SeasonService
	joinRequestService *usecase.JoinRequestService
	matchService       *usecase.MatchService
	standingsService   *usecase.StandingsService
	sweeper            *usecase.JoinRequestSweeper
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	seasonService *usecase.SeasonService,
	joinRequestService *usecase.JoinRequestService,
	matchService *usecase.MatchService,
	standingsService *usecase.StandingsService,
	sweeper *usecase.JoinRequestSweeper,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:      leagueService,
		seasonService:      seasonService,
		joinRequestService: joinRequestService,
		matchService:       matchService,
		standingsService:   standingsService,
		sweeper:            sweeper,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	item, err := h.leagueService.GetByID(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type leagueDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Sport                string `json:"sport"`
	Active               bool   `json:"active"`
	Public               bool   `json:"public"`
	AutoApprove          bool   `json:"autoApprove"`
	MaxTeams             *int   `json:"maxTeams,omitempty"`
	RegistrationDeadline string `json:"registrationDeadline,omitempty"`
	CreatedAt            string `json:"createdAt"`
}

func leagueToDTO(v league.League) leagueDTO {
	dto := leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		Sport:       v.Sport,
		Active:      v.Active,
		Public:      v.Public,
		AutoApprove: v.AutoApprove,
		MaxTeams:    v.MaxTeams,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.RegistrationDeadline != nil {
		dto.RegistrationDeadline = v.RegistrationDeadline.UTC().Format(time.RFC3339)
	}
	return dto
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
