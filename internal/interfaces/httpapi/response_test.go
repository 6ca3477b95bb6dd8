package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leagueday/internal/domain/joinrequest"
	"github.com/pitchside/leagueday/internal/domain/registration"
	"github.com/pitchside/leagueday/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "1.0" {
		t.Fatalf("expected apiVersion=1.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "1.0" {
		t.Fatalf("expected apiVersion=1.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
	items, ok := errorObj["errors"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errorObj["errors"])
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["domain"].(string); got != "leagueday" {
		t.Fatalf("expected error domain leagueday, got %v", item["domain"])
	}
}

func TestMapError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantCode: http.StatusBadRequest, wantStatus: "INVALID_ARGUMENT"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantStatus: "UNAUTHENTICATED"},
		{name: "league not public", err: usecase.ErrLeagueNotPublic, wantCode: http.StatusForbidden, wantStatus: "PERMISSION_DENIED"},
		{name: "not found", err: usecase.ErrNotFound, wantCode: http.StatusNotFound, wantStatus: "NOT_FOUND"},
		{name: "duplicate pending", err: joinrequest.ErrDuplicatePending, wantCode: http.StatusConflict, wantStatus: "ALREADY_EXISTS"},
		{name: "already registered", err: registration.ErrAlreadyRegistered, wantCode: http.StatusConflict, wantStatus: "ALREADY_EXISTS"},
		{name: "capacity exceeded", err: registration.ErrCapacityExceeded, wantCode: http.StatusConflict, wantStatus: "CAPACITY_EXCEEDED"},
		{name: "deadline passed", err: usecase.ErrDeadlinePassed, wantCode: http.StatusUnprocessableEntity, wantStatus: "DEADLINE_PASSED"},
		{name: "invalid transition", err: usecase.ErrInvalidTransition, wantCode: http.StatusConflict, wantStatus: "INVALID_TRANSITION"},
		{name: "conflict", err: usecase.ErrConflict, wantCode: http.StatusConflict, wantStatus: "ABORTED"},
		{name: "precondition failed", err: usecase.ErrPreconditionFailed, wantCode: http.StatusPreconditionFailed, wantStatus: "FAILED_PRECONDITION"},
		{name: "generation failed", err: usecase.ErrGenerationFailed, wantCode: http.StatusBadGateway, wantStatus: "GENERATION_FAILED"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantCode: http.StatusServiceUnavailable, wantStatus: "UNAVAILABLE"},
		{name: "unknown", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError, wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(fmt.Errorf("wrapped: %w", tt.err))
			if mapped.HTTPStatus != tt.wantCode {
				t.Fatalf("expected http status %d, got %d", tt.wantCode, mapped.HTTPStatus)
			}
			if mapped.Status != tt.wantStatus {
				t.Fatalf("expected status %s, got %s", tt.wantStatus, mapped.Status)
			}
		})
	}
}

func TestWriteInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	errorObj, _ := body["error"].(map[string]any)
	if got, _ := errorObj["message"].(string); got != "internal server error" {
		t.Fatalf("expected generic message, got %v", errorObj["message"])
	}
}
