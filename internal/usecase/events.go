package usecase

import (
	"context"
	"time"
)

// Event is a lifecycle notification emitted after a state change commits.
// Delivery is best effort; no operation depends on an event being received.
type Event struct {
	Type       string
	OccurredAt time.Time
	Payload    map[string]any
}

const (
	EventJoinRequestSubmitted    = "join_request.submitted"
	EventJoinRequestAutoApproved = "join_request.auto_approved"
	EventJoinRequestApproved     = "join_request.approved"
	EventJoinRequestRejected     = "join_request.rejected"
	EventJoinRequestWithdrawn    = "join_request.withdrawn"
	EventSeasonStatusChanged     = "season.status_changed"
	EventFixturesGenerated       = "season.fixtures_generated"
	EventFixturesDeleted         = "season.fixtures_deleted"
	EventMatchResultRecorded     = "match.result_recorded"
)

type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) {}
