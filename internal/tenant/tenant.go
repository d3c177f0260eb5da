// Package tenant resolves the owner of a request from the hosted auth
// provider's access token. Every row a tenant can see is keyed by this id.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/VeliorGroup/fluxo/internal/logger"
)

var ErrNoTenant = errors.New("no tenant in context")

type contextKey struct{}

func WithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, ownerID)
}

func FromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoTenant
	}

	return id, nil
}

// Verifier checks HS256 access tokens signed with the provider's secret.
type Verifier struct {
	secret   []byte
	audience string
}

// NewVerifier returns a verifier. An empty audience skips the aud check.
func NewVerifier(secret, audience string) *Verifier {
	return &Verifier{secret: []byte(secret), audience: audience}
}

// Owner validates token and returns its subject as the owner id.
func (v *Verifier) Owner(token string) (uuid.UUID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims jwt.RegisteredClaims

	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %w", err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject: %w", err)
	}

	return id, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// owner id in the request context.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}

		ownerID, err := v.Owner(token)
		if err != nil {
			log.Debug("rejected access token", "error", err, "path", r.URL.Path)
			http.Error(w, "invalid token", http.StatusUnauthorized)

			return
		}

		ctx := WithOwner(r.Context(), ownerID)
		ctx = logger.ToContext(ctx, log.With("owner_id", ownerID.String()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
