package middleware

import (
	"net/http"
	"runtime/debug"

	"answerhub/internal/contextutils"
	"answerhub/internal/response"

	"go.uber.org/zap"
)

// Recovery converts panics in handlers into 500 responses instead of
// killing the connection.
func Recovery(logger *zap.Logger, builder *response.Builder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("Panic recovered",
						zap.String("request_id", contextutils.GetRequestID(r.Context())),
						zap.String("path", r.URL.Path),
						zap.Any("panic", rec),
						zap.ByteString("stack", debug.Stack()),
					)
					builder.ErrorWithStatus(w, r, http.StatusInternalServerError,
						"INTERNAL_ERROR", "An unexpected error occurred")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
