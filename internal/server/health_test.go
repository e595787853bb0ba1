package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleHealth(t *testing.T) {
	db := openTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := handleHealth(logger, db)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	resp := decode[HealthResponse](t, rec)
	if resp["sqlite"] != "ok" {
		t.Errorf("sqlite check = %q, want ok", resp["sqlite"])
	}
}

func TestHandleHealthUnavailable(t *testing.T) {
	db := openTestDB(t)
	db.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := handleHealth(logger, db)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
