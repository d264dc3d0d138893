package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(t *testing.T, wantPrincipal bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetPrincipalFromContext(r.Context())
		if ok != wantPrincipal {
			t.Fatalf("principal present = %v, want %v", ok, wantPrincipal)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireBearer(t *testing.T) {
	hash, err := HashToken("desk-secret")
	require.NoError(t, err)

	h := RequireBearer(hash)(okHandler(t, true))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer desk-secret", http.StatusOK},
		{"scheme is case insensitive", "bearer desk-secret", http.StatusOK},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"basic auth", "Basic ZGVzazpzZWNyZXQ=", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/trading/execute", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestRequireBearerDisabled(t *testing.T) {
	h := RequireBearer("")(okHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
}
