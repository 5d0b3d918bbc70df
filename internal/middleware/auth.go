package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/iftakhar005/talenthunt/internal/api"
	"github.com/iftakhar005/talenthunt/internal/entities"
)

type userKey struct{}

// Authenticator resolves bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// UserFromContext returns user put by Auth middleware.
func UserFromContext(ctx context.Context) (*entities.User, bool) {
	u, ok := ctx.Value(userKey{}).(*entities.User)
	return u, ok
}

// WithUser puts user into context.
func WithUser(ctx context.Context, u *entities.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// Auth rejects requests without valid bearer token with 401.
func Auth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			u, err := a.Authenticate(r.Context(), token)
			if err != nil {
				log.WithError(err).Debug("failed to authenticate")
				api.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// AdminOnly rejects requests of non-admin users with 403. It should be used after Auth.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			api.WriteError(w, http.StatusUnauthorized, "authorization required")
			return
		}

		if u.Role != entities.AdminRole {
			api.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", errors.New("authorization header required")
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.New("invalid authorization header format")
	}

	return strings.TrimSpace(parts[1]), nil
}
