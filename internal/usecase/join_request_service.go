package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/league"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/domain/season"
	"github.com/pitchside/leagueday/internal/domain/user"
	"github.com/pitchside/leagueday/internal/platform/id"
	"github.com/pitchside/leagueday/internal/platform/logging"
)

// DefaultJoinRequestTTL is how long a pending request stays actionable
// before it expires.
const DefaultJoinRequestTTL = 7 * 24 * time.Hour

const systemReviewer = "system"

// JoinRequestService drives the join workflow: a team submits a request
// against a league's season, an admin approves or rejects it, the requester
// may withdraw it, and unattended requests expire.
type JoinRequestService struct {
	leagues       league.Repository
	seasons       season.Repository
	requests      joinrequest.Repository
	registrations registration.Repository
	guard         *EligibilityGuard
	ids           id.Generator
	events        EventPublisher
	logger        *logging.Logger
	ttl           time.Duration
	now           func() time.Time
}

func NewJoinRequestService(
	leagues league.Repository,
	seasons season.Repository,
	requests joinrequest.Repository,
	registrations registration.Repository,
	guard *EligibilityGuard,
	ids id.Generator,
	events EventPublisher,
	logger *logging.Logger,
	ttl time.Duration,
) *JoinRequestService {
	if ttl <= 0 {
		ttl = DefaultJoinRequestTTL
	}
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &JoinRequestService{
		leagues:       leagues,
		seasons:       seasons,
		requests:      requests,
		registrations: registrations,
		guard:         guard,
		ids:           ids,
		events:        events,
		logger:        logger,
		ttl:           ttl,
		now:           time.Now,
	}
}

type SubmitJoinRequestInput struct {
	TeamID   string
	LeagueID string
	SeasonID string
	Message  string
}

// Submit records a team's ask to join a league's season. When the league is
// configured for auto-approval the request is approved and the team
// registered in the same call.
func (s *JoinRequestService) Submit(ctx context.Context, actor user.Principal, input SubmitJoinRequestInput) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Submit")
	defer span.End()

	if actor.UserID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.SeasonID = strings.TrimSpace(input.SeasonID)
	input.Message = strings.TrimSpace(input.Message)
	if input.TeamID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.SeasonID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	lg, exists, err := s.leagues.GetByID(ctx, input.LeagueID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	sn, exists, err := s.seasons.GetByID(ctx, input.SeasonID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: season=%s", ErrNotFound, input.SeasonID)
	}
	if sn.LeagueID != lg.ID {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: season=%s does not belong to league=%s", ErrInvalidInput, sn.ID, lg.ID)
	}

	now := s.now()
	if err := s.guard.CheckSubmission(ctx, lg, sn, input.TeamID, now); err != nil {
		return joinrequest.JoinRequest{}, err
	}

	requestID, err := s.ids.NewID("req")
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("generate request id: %w", err)
	}

	request := joinrequest.JoinRequest{
		ID:          requestID,
		TeamID:      input.TeamID,
		LeagueID:    lg.ID,
		SeasonID:    sn.ID,
		RequestedBy: actor.UserID,
		Message:     input.Message,
		Status:      joinrequest.StatusPending,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, joinrequest.ErrDuplicatePending) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: team=%s league=%s", joinrequest.ErrDuplicatePending, input.TeamID, lg.ID)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("create join request: %w", err)
	}

	if !lg.AutoApprove {
		s.events.Publish(ctx, Event{
			Type:       EventJoinRequestSubmitted,
			OccurredAt: now,
			Payload: map[string]any{
				"request_id": request.ID,
				"team_id":    request.TeamID,
				"league_id":  request.LeagueID,
				"season_id":  request.SeasonID,
			},
		})
		return request, nil
	}

	approved, err := s.approve(ctx, request, lg, sn, joinrequest.Review{
		ReviewedBy: systemReviewer,
		ReviewedAt: now,
		Message:    "Automatically approved",
	})
	if err != nil {
		// The pending row was already written; withdraw it so a lost
		// capacity race does not leave an orphan blocking a later retry.
		s.discardRequest(ctx, request.ID, now)
		return joinrequest.JoinRequest{}, err
	}

	s.events.Publish(ctx, Event{
		Type:       EventJoinRequestAutoApproved,
		OccurredAt: now,
		Payload: map[string]any{
			"request_id": approved.ID,
			"team_id":    approved.TeamID,
			"league_id":  approved.LeagueID,
			"season_id":  approved.SeasonID,
		},
	})
	return approved, nil
}

// Approve grants a pending request and registers the team for the season.
func (s *JoinRequestService) Approve(ctx context.Context, actor user.Principal, requestID, message string) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Approve")
	defer span.End()

	request, lg, err := s.loadForReview(ctx, actor, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	sn, exists, err := s.seasons.GetByID(ctx, request.SeasonID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: season=%s", ErrNotFound, request.SeasonID)
	}

	now := s.now()
	approved, err := s.approve(ctx, request, lg, sn, joinrequest.Review{
		ReviewedBy: actor.UserID,
		ReviewedAt: now,
		Message:    strings.TrimSpace(message),
	})
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	s.events.Publish(ctx, Event{
		Type:       EventJoinRequestApproved,
		OccurredAt: now,
		Payload: map[string]any{
			"request_id":  approved.ID,
			"team_id":     approved.TeamID,
			"league_id":   approved.LeagueID,
			"season_id":   approved.SeasonID,
			"reviewed_by": actor.UserID,
		},
	})
	return approved, nil
}

// approve performs the atomic approve-and-register write shared by the admin
// and auto-approval paths. The request must still be pending at the store.
// discardRequest withdraws a pending row the service itself created and can
// no longer honor. Best effort: the row expires on its own if this write
// fails too.
func (s *JoinRequestService) discardRequest(ctx context.Context, requestID string, now time.Time) {
	err := s.requests.Resolve(ctx, requestID, joinrequest.StatusWithdrawn, joinrequest.Review{
		ReviewedBy: systemReviewer,
		ReviewedAt: now,
		Message:    "Automatic approval failed",
	})
	if err != nil {
		s.logger.WarnContext(ctx, "withdraw unhonored auto-approve request", "request_id", requestID, "error", err)
	}
}

func (s *JoinRequestService) approve(ctx context.Context, request joinrequest.JoinRequest, lg league.League, sn season.Season, review joinrequest.Review) (joinrequest.JoinRequest, error) {
	if !request.Pending(review.ReviewedAt) {
		if request.Status == joinrequest.StatusPending {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s has expired", ErrPreconditionFailed, request.ID)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s is %s", ErrConflict, request.ID, request.Status)
	}

	registrationID, err := s.ids.NewID("reg")
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("generate registration id: %w", err)
	}

	reg := registration.Registration{
		ID:        registrationID,
		SeasonID:  sn.ID,
		LeagueID:  lg.ID,
		TeamID:    request.TeamID,
		Status:    registration.StatusRegistered,
		CreatedAt: review.ReviewedAt,
	}

	err = s.requests.ApproveAndRegister(ctx, request.ID, review, reg, effectiveCapacity(lg, sn))
	switch {
	case err == nil:
	case errors.Is(err, joinrequest.ErrNotPending):
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s is no longer pending", ErrConflict, request.ID)
	case errors.Is(err, registration.ErrCapacityExceeded):
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: season=%s capacity=%d", err, sn.ID, effectiveCapacity(lg, sn))
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return joinrequest.JoinRequest{}, err
	default:
		return joinrequest.JoinRequest{}, fmt.Errorf("approve and register: %w", err)
	}

	s.refreshRosterCount(ctx, sn.ID)

	request.Status = joinrequest.StatusApproved
	request.ReviewedBy = &review.ReviewedBy
	request.ReviewedAt = &review.ReviewedAt
	if review.Message != "" {
		request.ReviewMessage = &review.Message
	}
	return request, nil
}

// Reject declines a pending request without registering the team.
func (s *JoinRequestService) Reject(ctx context.Context, actor user.Principal, requestID, message string) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Reject")
	defer span.End()

	request, _, err := s.loadForReview(ctx, actor, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	now := s.now()
	review := joinrequest.Review{
		ReviewedBy: actor.UserID,
		ReviewedAt: now,
		Message:    strings.TrimSpace(message),
	}
	resolved, err := s.resolve(ctx, request, joinrequest.StatusRejected, review)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	s.events.Publish(ctx, Event{
		Type:       EventJoinRequestRejected,
		OccurredAt: now,
		Payload: map[string]any{
			"request_id":  resolved.ID,
			"team_id":     resolved.TeamID,
			"league_id":   resolved.LeagueID,
			"reviewed_by": actor.UserID,
		},
	})
	return resolved, nil
}

// Withdraw lets the requester retract their own pending request.
func (s *JoinRequestService) Withdraw(ctx context.Context, actor user.Principal, requestID string) (joinrequest.JoinRequest, error) {
	ctx, span := startUsecaseSpan(ctx, "JoinRequestService.Withdraw")
	defer span.End()

	if actor.UserID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}
	if request.RequestedBy != actor.UserID {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: only the requester may withdraw request=%s", ErrUnauthorized, request.ID)
	}

	now := s.now()
	review := joinrequest.Review{ReviewedBy: actor.UserID, ReviewedAt: now}
	resolved, err := s.resolve(ctx, request, joinrequest.StatusWithdrawn, review)
	if err != nil {
		return joinrequest.JoinRequest{}, err
	}

	s.events.Publish(ctx, Event{
		Type:       EventJoinRequestWithdrawn,
		OccurredAt: now,
		Payload: map[string]any{
			"request_id": resolved.ID,
			"team_id":    resolved.TeamID,
			"league_id":  resolved.LeagueID,
		},
	})
	return resolved, nil
}

// ListPendingByLeague returns the league's actionable requests for review.
func (s *JoinRequestService) ListPendingByLeague(ctx context.Context, actor user.Principal, leagueID string) ([]joinrequest.JoinRequest, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	lg, exists, err := s.leagues.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if err := requireLeagueAdmin(actor, lg); err != nil {
		return nil, err
	}

	items, err := s.requests.ListPendingByLeague(ctx, leagueID, s.now())
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return items, nil
}

// ListMine returns every request the caller has submitted, newest first.
func (s *JoinRequestService) ListMine(ctx context.Context, actor user.Principal) ([]joinrequest.JoinRequest, error) {
	if actor.UserID == "" {
		return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	items, err := s.requests.ListByRequester(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list requests by requester: %w", err)
	}
	return items, nil
}

func (s *JoinRequestService) resolve(ctx context.Context, request joinrequest.JoinRequest, target joinrequest.Status, review joinrequest.Review) (joinrequest.JoinRequest, error) {
	if !request.Pending(review.ReviewedAt) {
		if request.Status == joinrequest.StatusPending {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s has expired", ErrPreconditionFailed, request.ID)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s is %s", ErrConflict, request.ID, request.Status)
	}

	if err := s.requests.Resolve(ctx, request.ID, target, review); err != nil {
		if errors.Is(err, joinrequest.ErrNotPending) {
			return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s is no longer pending", ErrConflict, request.ID)
		}
		return joinrequest.JoinRequest{}, fmt.Errorf("resolve join request: %w", err)
	}

	request.Status = target
	request.ReviewedBy = &review.ReviewedBy
	request.ReviewedAt = &review.ReviewedAt
	if review.Message != "" {
		request.ReviewMessage = &review.Message
	}
	return request, nil
}

func (s *JoinRequestService) loadForReview(ctx context.Context, actor user.Principal, requestID string) (joinrequest.JoinRequest, league.League, error) {
	request, err := s.getRequest(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, league.League{}, err
	}

	lg, exists, err := s.leagues.GetByID(ctx, request.LeagueID)
	if err != nil {
		return joinrequest.JoinRequest{}, league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, request.LeagueID)
	}
	if err := requireLeagueAdmin(actor, lg); err != nil {
		return joinrequest.JoinRequest{}, league.League{}, err
	}

	return request, lg, nil
}

func (s *JoinRequestService) getRequest(ctx context.Context, requestID string) (joinrequest.JoinRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request id is required", ErrInvalidInput)
	}

	request, exists, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return joinrequest.JoinRequest{}, fmt.Errorf("get join request: %w", err)
	}
	if !exists {
		return joinrequest.JoinRequest{}, fmt.Errorf("%w: request=%s", ErrNotFound, requestID)
	}
	return request, nil
}

// refreshRosterCount recomputes the denormalized roster counter. The counter
// is a convenience read; losing one refresh is harmless.
func (s *JoinRequestService) refreshRosterCount(ctx context.Context, seasonID string) {
	count, err := s.registrations.CountActiveBySeason(ctx, seasonID)
	if err != nil {
		s.logger.WarnContext(ctx, "count season registrations", "season_id", seasonID, "error", err)
		return
	}
	if err := s.seasons.SetRegisteredTeamsCount(ctx, seasonID, count); err != nil {
		s.logger.WarnContext(ctx, "refresh roster count", "season_id", seasonID, "error", err)
	}
}
