package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	failing := func(context.Context) error { return errors.New("bucket unreachable") }
	healthy := func(context.Context) error { return nil }

	cases := []struct {
		name       string
		ping       func(context.Context) error
		path       string
		wantCode   int
		wantStatus string
	}{
		{name: "healthz ignores source", ping: failing, path: "/healthz", wantCode: http.StatusOK, wantStatus: "ok"},
		{name: "readyz ok", ping: healthy, path: "/readyz", wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "readyz without ping", ping: nil, path: "/readyz", wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "readyz degraded", ping: failing, path: "/readyz", wantCode: http.StatusServiceUnavailable, wantStatus: "degraded"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler(tc.ping).Register(r)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != tc.wantCode {
				t.Fatalf("want %d got %d", tc.wantCode, w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["status"] != tc.wantStatus {
				t.Fatalf("status: want %q got %q", tc.wantStatus, body["status"])
			}
		})
	}
}

func TestHealthHandler_ReadyzDeadline(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var deadline time.Time
	r := gin.New()
	NewHealthHandler(func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}).Register(r)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if deadline.IsZero() || time.Until(deadline) > 2*time.Second {
		t.Fatalf("ping should run under a 2s deadline, got %v", deadline)
	}
}
