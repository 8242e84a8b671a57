package middleware

import (
	"context"
	"errors"
	"net/http"

	"jobprep/internal/models"
	"jobprep/internal/utils"
)

type contextKey string

const actorContextKey contextKey = "actor"

// UserLoader resolves token subjects to user records.
type UserLoader interface {
	GetUserByID(id uint) (*models.User, error)
}

// Auth resolves the bearer token into an actor and stores it in the
// request context. Requests without an Authorization header pass through
// as anonymous; a header that fails verification, or a token for an
// unknown or inactive user, is rejected outright with 401.
func Auth(users UserLoader, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims, err := utils.VerifyToken(req, secret)
			if err != nil {
				if errors.Is(err, utils.ErrMissingAuthHeader) {
					next.ServeHTTP(w, req)
					return
				}
				utils.Error(w, http.StatusUnauthorized, "unauthenticated", "Invalid or expired token")
				return
			}

			id, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "unauthenticated", "Invalid token claims")
				return
			}

			user, err := users.GetUserByID(id)
			if err != nil || !user.IsActive {
				utils.Error(w, http.StatusUnauthorized, "unauthenticated", "Unknown or inactive user")
				return
			}

			ctx := context.WithValue(req.Context(), actorContextKey, user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// ActorFromContext returns the authenticated actor, nil for anonymous.
func ActorFromContext(ctx context.Context) *models.User {
	actor, _ := ctx.Value(actorContextKey).(*models.User)
	return actor
}

// WithActor returns a context carrying the given actor. Test helper glue
// for exercising handlers without the middleware.
func WithActor(ctx context.Context, actor *models.User) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}
