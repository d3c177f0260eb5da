package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/VeliorGroup/fluxo/internal/http"
	"github.com/VeliorGroup/fluxo/internal/http/hub"
	"github.com/VeliorGroup/fluxo/internal/tenant"
)

const secret = "0123456789abcdef0123456789abcdef"

func newRouter(opts api.Options) http.Handler {
	return api.New(opts, tenant.NewVerifier(secret, "authenticated"), api.Handlers{
		Hub: hub.NewHandler(),
	})
}

func token(t *testing.T, sub string) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(api.Options{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouter_Auth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "Missing", wantStatus: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "Valid", header: "Bearer " + token(t, uuid.NewString()), wantStatus: http.StatusOK},
	}

	router := newRouter(api.Options{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hub/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Greeting string `json:"greeting"`
				Modules  []struct {
					ID     string `json:"id"`
					Active bool   `json:"active"`
				} `json:"modules"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Greeting)
			require.NotEmpty(t, body.Modules)
			assert.True(t, body.Modules[0].Active)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := newRouter(api.Options{RateLimitRPS: 0.001, RateLimitBurst: 2})

	codes := make([]int, 0, 3)

	for range 3 {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
