package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlers_Ping(t *testing.T) {
	t.Parallel()

	h := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()

	h.Ping(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body["message"] != "pong" {
		t.Fatalf(`expected message "pong", got %q`, body["message"])
	}
}

func TestHandlers_HealthcheckHead(t *testing.T) {
	t.Parallel()

	h := New(nil)

	req := httptest.NewRequest(http.MethodHead, "/healthcheck", nil)
	rr := httptest.NewRecorder()

	h.HealthcheckHead(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
}
