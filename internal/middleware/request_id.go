package middleware

import (
	"net/http"

	"answerhub/internal/contextutils"

	"github.com/gofrs/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a unique ID, honoring one supplied by
// the client, and echoes it back in the response headers.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				if id, err := uuid.NewV4(); err == nil {
					requestID = id.String()
				}
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := contextutils.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
