package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// NewRouter wires the handlers under /api/v1 behind CORS and a global rate limit.
func NewRouter(h *Handler, allowedOrigins []string, limiter *rate.Limiter) http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/streak", h.StreakHandler).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/stats", h.StatsHandler).Methods(http.MethodGet)
	api.HandleFunc("/daily-challenge/today", h.DailyChallengeHandler).Methods(http.MethodGet)
	api.HandleFunc("/problems", h.ListProblemsHandler).Methods(http.MethodGet)
	api.HandleFunc("/problems/{slug}", h.ProblemHandler).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return rateLimitMiddleware(limiter)(c.Handler(router))
}

func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
