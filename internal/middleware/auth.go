package middleware

import (
	"net/http"
	"strings"

	"answerhub/internal/contextutils"
	"answerhub/internal/response"
	"answerhub/internal/services"
)

// Auth resolves the caller's identity from a bearer JWT or a session
// cookie and puts the user ID on the request context.
type Auth struct {
	authService services.AuthService
	sessionName string
	builder     *response.Builder
}

// NewAuth creates the authentication middleware.
func NewAuth(authService services.AuthService, sessionName string, builder *response.Builder) *Auth {
	return &Auth{
		authService: authService,
		sessionName: sessionName,
		builder:     builder,
	}
}

// Required rejects requests without a valid identity.
func (a *Auth) Required() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := a.resolve(r)
			if !ok {
				a.builder.ErrorWithStatus(w, r, http.StatusUnauthorized,
					"UNAUTHORIZED", "authentication required")
				return
			}
			ctx := contextutils.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional attaches the identity when present but lets anonymous
// requests through.
func (a *Auth) Optional() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := a.resolve(r); ok {
				r = r.WithContext(contextutils.WithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) resolve(r *http.Request) (int64, bool) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if user, err := a.authService.UserFromJWT(r.Context(), token); err == nil {
			return user.ID, true
		}
	}

	if cookie, err := r.Cookie(a.sessionName); err == nil && cookie.Value != "" {
		if user, err := a.authService.UserFromSession(r.Context(), cookie.Value); err == nil {
			return user.ID, true
		}
	}
	return 0, false
}
