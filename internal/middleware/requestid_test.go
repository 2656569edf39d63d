package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID(t *testing.T) {
	const incoming = "6f1f9b5e-3c0a-4e59-9a7e-0b8d2a3c4d5e"

	cases := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "generated when absent", header: "", reuse: false},
		{name: "generated when not a uuid", header: "not-a-uuid", reuse: false},
		{name: "reused when valid", header: incoming, reuse: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(RequestIDKey)
				c.String(200, "ok")
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q context %q", got, seen)
			}
			if tc.reuse != (got == tc.header) {
				t.Fatalf("reuse=%v but got %q for %q", tc.reuse, got, tc.header)
			}
		})
	}
}
