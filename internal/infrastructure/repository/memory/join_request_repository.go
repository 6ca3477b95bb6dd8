package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/registration"
)

// JoinRequestRepository keeps requests in memory while honoring the same
// constraints the SQL implementation enforces: one pending request per team
// and league, and an all-or-nothing approve-and-register write.
type JoinRequestRepository struct {
	mu            sync.RWMutex
	items         map[string]joinrequest.JoinRequest
	registrations *RegistrationRepository
}

// NewJoinRequestRepository shares the registration store so approval can
// apply both writes under one lock ordering.
func NewJoinRequestRepository(registrations *RegistrationRepository) *JoinRequestRepository {
	return &JoinRequestRepository{
		items:         make(map[string]joinrequest.JoinRequest),
		registrations: registrations,
	}
}

func (r *JoinRequestRepository) Create(_ context.Context, request joinrequest.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[request.ID]; exists {
		return fmt.Errorf("join request %s already exists", request.ID)
	}
	for _, existing := range r.items {
		if existing.TeamID == request.TeamID && existing.LeagueID == request.LeagueID && existing.Pending(request.CreatedAt) {
			return joinrequest.ErrDuplicatePending
		}
	}

	r.items[request.ID] = request
	return nil
}

func (r *JoinRequestRepository) GetByID(_ context.Context, requestID string) (joinrequest.JoinRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.items[requestID]
	if !ok {
		return joinrequest.JoinRequest{}, false, nil
	}

	return request, true, nil
}

func (r *JoinRequestRepository) FindActiveByTeamAndLeague(_ context.Context, teamID, leagueID string, now time.Time) (joinrequest.JoinRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, request := range r.items {
		if request.TeamID == teamID && request.LeagueID == leagueID && request.Pending(now) {
			return request, true, nil
		}
	}

	return joinrequest.JoinRequest{}, false, nil
}

func (r *JoinRequestRepository) ListPendingByLeague(_ context.Context, leagueID string, now time.Time) ([]joinrequest.JoinRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joinrequest.JoinRequest, 0)
	for _, request := range r.items {
		if request.LeagueID == leagueID && request.Pending(now) {
			out = append(out, request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (r *JoinRequestRepository) ListByRequester(_ context.Context, userID string) ([]joinrequest.JoinRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]joinrequest.JoinRequest, 0)
	for _, request := range r.items {
		if request.RequestedBy == userID {
			out = append(out, request)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *JoinRequestRepository) ApproveAndRegister(ctx context.Context, requestID string, review joinrequest.Review, reg registration.Registration, maxTeams int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.items[requestID]
	if !ok {
		return joinrequest.ErrNotFound
	}
	if !request.Pending(review.ReviewedAt) {
		return joinrequest.ErrNotPending
	}

	if err := r.registrations.CreateWithinCapacity(ctx, reg, maxTeams); err != nil {
		return err
	}

	request.Status = joinrequest.StatusApproved
	request.ReviewedBy = &review.ReviewedBy
	request.ReviewedAt = &review.ReviewedAt
	if review.Message != "" {
		request.ReviewMessage = &review.Message
	}
	r.items[requestID] = request
	return nil
}

func (r *JoinRequestRepository) Resolve(_ context.Context, requestID string, target joinrequest.Status, review joinrequest.Review) error {
	if !target.Terminal() {
		return fmt.Errorf("resolve target %s is not terminal", target)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.items[requestID]
	if !ok {
		return joinrequest.ErrNotFound
	}
	if !request.Pending(review.ReviewedAt) {
		return joinrequest.ErrNotPending
	}

	request.Status = target
	request.ReviewedBy = &review.ReviewedBy
	request.ReviewedAt = &review.ReviewedAt
	if review.Message != "" {
		request.ReviewMessage = &review.Message
	}
	r.items[requestID] = request
	return nil
}

func (r *JoinRequestRepository) ExpireDue(_ context.Context, leagueID string, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for id, request := range r.items {
		if request.LeagueID != leagueID || request.Status != joinrequest.StatusPending {
			continue
		}
		if !request.ExpiredBy(now) {
			continue
		}

		request.Status = joinrequest.StatusExpired
		r.items[id] = request
		expired++
	}

	return expired, nil
}

func (r *JoinRequestRepository) ListLeagueIDsWithDuePending(_ context.Context, now time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, request := range r.items {
		if request.Status == joinrequest.StatusPending && request.ExpiredBy(now) {
			seen[request.LeagueID] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for leagueID := range seen {
		out = append(out, leagueID)
	}
	sort.Strings(out)

	return out, nil
}
