package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VeliorGroup/fluxo/internal/tenant"
)

const secret = "a-test-secret-of-at-least-32-bytes!!"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()

	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return s
}

func TestVerifier_Middleware(t *testing.T) {
	owner := uuid.New()
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "Valid",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: owner.String(), ExpiresAt: exp, Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-123"), jwt.RegisteredClaims{Subject: owner.String(), ExpiresAt: exp, Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Expired",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: owner.String(), ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)), Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NoExpiry",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: owner.String(), Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongAudience",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: owner.String(), ExpiresAt: exp, Audience: jwt.ClaimStrings{"anon"}}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "SubjectNotUUID",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.RegisteredClaims{Subject: "admin", ExpiresAt: exp, Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NoneAlgorithm",
			header:     "Bearer " + sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{Subject: owner.String(), ExpiresAt: exp, Audience: jwt.ClaimStrings{"authenticated"}}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	v := tenant.NewVerifier(secret, "authenticated")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got uuid.UUID

			h := v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, err := tenant.FromContext(r.Context())
				require.NoError(t, err)

				got = id
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, owner, got)
			}
		})
	}
}

func TestFromContext_Missing(t *testing.T) {
	_, err := tenant.FromContext(context.Background())
	assert.ErrorIs(t, err, tenant.ErrNoTenant)

	_, err = tenant.FromContext(tenant.WithOwner(context.Background(), uuid.Nil))
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}
