package authhub

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	basecache "github.com/pitchside/leagueday/internal/platform/cache"
	"github.com/pitchside/leagueday/internal/platform/logging"
	"github.com/pitchside/leagueday/internal/usecase"
)

func TestClientVerifyAccessToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-admin-key"); got != "admin-secret" {
			t.Errorf("unexpected x-admin-key: %s", got)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Errorf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "owner@example.com",
			"roles":   []string{"league_admin"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", "admin-secret", nil, logging.NewNop())

	principal, err := client.VerifyAccessToken(t.Context(), "token-abc")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" {
		t.Fatalf("unexpected user id: %s", principal.UserID)
	}
	if principal.Email != "owner@example.com" {
		t.Fatalf("unexpected email: %s", principal.Email)
	}
	if !principal.HasRole("league_admin") {
		t.Fatalf("expected league_admin role, got %v", principal.Roles)
	}
}

func TestClientVerifyAccessToken_Failures(t *testing.T) {
	t.Parallel()

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()

		client := NewClient(nil, "http://localhost:0", "/introspect", "", nil, logging.NewNop())
		if _, err := client.VerifyAccessToken(t.Context(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("denied introspection", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(srv.Client(), srv.URL, "/introspect", "", nil, logging.NewNop())
		if _, err := client.VerifyAccessToken(t.Context(), "token"); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("inactive token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"active":false}`))
		}))
		defer srv.Close()

		client := NewClient(srv.Client(), srv.URL, "/introspect", "", nil, logging.NewNop())
		if _, err := client.VerifyAccessToken(t.Context(), "token"); !errors.Is(err, usecase.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.Client(), srv.URL, "/introspect", "", nil, logging.NewNop())
		if _, err := client.VerifyAccessToken(t.Context(), "token"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})
}

func TestClientVerifyAccessToken_CachesPrincipal(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-123"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/introspect", "", basecache.NewStore(time.Minute), logging.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("expected one introspection call, got %d", got)
	}
}
