package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zorofrizzy/breatheBack/internal/middleware"
)

func TestAPIKey(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.APIKey("test-admin-key")(next)

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"valid key", "test-admin-key", http.StatusOK},
		{"wrong key", "guess", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, rr.Code)
			}
		})
	}
}
