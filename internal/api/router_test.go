package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/domain/dto"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(NewHandler(&mockDashboardService{}, Defaults{TopK: 5}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entities", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	var out dto.EntitiesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Level != "firm" || len(out.Entities) != 2 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_ErrorHandlerMapsServiceErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter(NewHandler(&mockDashboardService{err: &analytics.NoDataError{Table: "headcounts"}}, Defaults{}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard?metric=deals_per_agent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var out dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Message != "no data found" {
		t.Fatalf("unexpected message: %q", out.Message)
	}
}
