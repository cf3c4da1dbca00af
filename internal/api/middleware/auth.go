// Package middleware provides HTTP middleware for the API layer.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mazekit/mazegame-go/internal/api/apierr"
	"github.com/mazekit/mazegame-go/internal/model"
	"github.com/mazekit/mazegame-go/internal/services/auth"
)

type contextKey string

const (
	playerContextKey  contextKey = "player"
	sessionContextKey contextKey = "session"
)

// Auth creates middleware that requires a valid session. The session and
// player are attached to the request context.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError("missing session token"))
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			ctx = context.WithValue(ctx, playerContextKey, &session.Player)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the session and player to the context when a valid
// token is present, but lets unauthenticated requests through.
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token != "" {
				if session, err := authService.ValidateSession(token); err == nil {
					ctx := context.WithValue(r.Context(), sessionContextKey, session)
					ctx = context.WithValue(ctx, playerContextKey, &session.Player)
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken pulls the session token from the Authorization header or the
// session cookie
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}

	return ""
}

// GetPlayer returns the authenticated player from the context, if any
func GetPlayer(ctx context.Context) (*model.Player, bool) {
	player, ok := ctx.Value(playerContextKey).(*model.Player)
	return player, ok
}

// GetSession returns the session from the context, if any
func GetSession(ctx context.Context) (*auth.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*auth.Session)
	return session, ok
}

// MustGetPlayer returns the authenticated player from the context and panics
// if there is none. Only call from handlers behind the Auth middleware.
func MustGetPlayer(ctx context.Context) *model.Player {
	player, ok := GetPlayer(ctx)
	if !ok {
		panic("no authenticated player in request context")
	}
	return player
}
