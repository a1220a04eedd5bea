package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/opticours-api/internal/models"
	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/gorilla/mux"
)

type contextKey struct{}

// Authenticator resolves a bearer token to the signed-in user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireSession rejects requests whose bearer token is not the current session.
func RequireSession(auth Authenticator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				status := http.StatusUnauthorized
				var message string
				if appErr, ok := err.(*utils.AppError); ok {
					status = appErr.StatusCode
					message = appErr.Message
				} else {
					message = "Authentification requise"
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{
					"error": message,
					"kind":  string(utils.KindOf(err)),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the user stored by RequireSession.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextKey{}).(*models.User)
	return user, ok && user != nil
}
