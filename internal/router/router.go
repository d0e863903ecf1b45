package router

import (
	"encoding/json"
	"net/http"

	"answerhub/internal/cache"
	"answerhub/internal/config"
	"answerhub/internal/database"
	"answerhub/internal/handlers/api/v1/answers"
	authhandler "answerhub/internal/handlers/api/v1/auth"
	"answerhub/internal/handlers/api/v1/questions"
	"answerhub/internal/handlers/api/v1/stats"
	"answerhub/internal/handlers/api/v1/users"
	"answerhub/internal/middleware"
	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// New builds the HTTP handler tree: API v1 routes wrapped in the
// standard middleware stack.
func New(
	cfg *config.Config,
	svc *services.Collection,
	cacheProvider cache.Cache,
	logger *zap.Logger,
) http.Handler {
	builder := response.NewBuilder(logger)
	auth := middleware.NewAuth(svc.Auth, cfg.Auth.SessionName, builder)

	authController := authhandler.NewController(svc, builder, cfg.Auth.SessionName, logger)
	questionController := questions.NewController(svc, builder, logger)
	answerController := answers.NewController(svc, builder, logger)
	userController := users.NewController(svc, builder, logger)
	statsController := stats.NewController(svc, builder, logger)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", healthHandler(cacheProvider))

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authController.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authController.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", authController.Logout)

	// Questions
	mux.HandleFunc("GET /api/v1/questions", questionController.List)
	mux.HandleFunc("GET /api/v1/questions/{id}", questionController.Get)
	mux.Handle("POST /api/v1/questions",
		requireAuth(auth, questionController.Create))
	mux.Handle("DELETE /api/v1/questions/{id}",
		requireAuth(auth, questionController.Delete))
	mux.Handle("POST /api/v1/questions/{id}/answers",
		requireAuth(auth, questionController.CreateAnswer))
	mux.Handle("POST /api/v1/questions/{id}/vote",
		requireAuth(auth, questionController.Vote))

	// Answers
	mux.Handle("POST /api/v1/answers/{id}/vote",
		requireAuth(auth, answerController.Vote))
	mux.Handle("POST /api/v1/answers/{id}/accept",
		requireAuth(auth, answerController.Accept))

	// Users
	mux.HandleFunc("GET /api/v1/users", userController.List)
	mux.Handle("GET /api/v1/users/me",
		requireAuth(auth, userController.Me))
	mux.HandleFunc("GET /api/v1/users/{id}", userController.GetProfile)
	mux.HandleFunc("GET /api/v1/users/{id}/questions", userController.Questions)
	mux.HandleFunc("GET /api/v1/users/{id}/answers", userController.Answers)

	// Tags and stats
	mux.HandleFunc("GET /api/v1/tags", statsController.Tags)
	mux.HandleFunc("GET /api/v1/stats", statsController.Platform)
	mux.HandleFunc("GET /api/v1/stats/leaderboard", userController.Leaderboard)

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Recovery(logger, builder),
		middleware.StructuredLogger(logger),
		middleware.CORS(cfg.Server.TrustedOrigins),
	)
}

func requireAuth(auth *middleware.Auth, h http.HandlerFunc) http.Handler {
	return auth.Required()(h)
}

// healthHandler reports database and cache health. Degraded dependencies
// still return 200 so load balancers keep routing; only hard failures
// flip the status code.
func healthHandler(cacheProvider cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]any{"status": "ok"}

		dbHealth := database.Health(r.Context())
		body["database"] = dbHealth
		if dbHealth.Status == database.StatusUnhealthy {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
		}

		if cacheProvider != nil {
			if err := cacheProvider.Health(r.Context()); err != nil {
				body["cache"] = "unhealthy"
			} else {
				body["cache"] = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
