package webhook

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/platform/resilience"
	"github.com/pitchside/leagueday/internal/usecase"
)

func TestPublisherDeliversEvent(t *testing.T) {
	t.Parallel()

	type received struct {
		auth string
		body []byte
	}
	got := make(chan received, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(body)
		got <- received{auth: r.Header.Get("Authorization"), body: body}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	publisher := NewPublisher(PublisherConfig{
		Endpoint: server.URL,
		Token:    "hook-secret",
	}, logging.NewNop())

	publisher.Publish(t.Context(), usecase.Event{
		Type:       usecase.EventJoinRequestApproved,
		OccurredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"request_id": "req-001"},
	})

	select {
	case r := <-got:
		if r.auth != "Bearer hook-secret" {
			t.Fatalf("unexpected authorization header: %s", r.auth)
		}
		var decoded struct {
			Type       string         `json:"type"`
			OccurredAt string         `json:"occurred_at"`
			Payload    map[string]any `json:"payload"`
		}
		if err := sonic.Unmarshal(r.body, &decoded); err != nil {
			t.Fatalf("decode webhook body: %v", err)
		}
		if decoded.Type != usecase.EventJoinRequestApproved {
			t.Fatalf("unexpected event type: %s", decoded.Type)
		}
		if decoded.OccurredAt != "2026-03-01T12:00:00Z" {
			t.Fatalf("unexpected occurred_at: %s", decoded.OccurredAt)
		}
		if decoded.Payload["request_id"] != "req-001" {
			t.Fatalf("unexpected payload: %v", decoded.Payload)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("webhook request was not received")
	}
}

func TestPublisherSkipsEmptyEndpoint(t *testing.T) {
	t.Parallel()

	publisher := NewPublisher(PublisherConfig{}, logging.NewNop())

	// Must not panic or block without an endpoint configured.
	publisher.Publish(t.Context(), usecase.Event{Type: usecase.EventSeasonStatusChanged})
}

func TestPublisherCircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewPublisher(PublisherConfig{
		Endpoint: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			Cooldown:         time.Hour,
		},
	}, logging.NewNop())

	for i := 0; i < 5; i++ {
		publisher.Publish(t.Context(), usecase.Event{Type: usecase.EventMatchResultRecorded})
	}

	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 upstream hits before the circuit opened, got %d", got)
	}
}
