package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/app/usecase"
	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type Handler struct {
	streak   usecase.StreakGetter
	stats    usecase.StatsGetter
	daily    usecase.DailyChallengeGetter
	problems domain.ProblemRepository
	today    func() time.Time
	log      walog.Logger
}

// NewHandler builds the API handlers. today is called once per request and
// is the only source of the current date.
func NewHandler(streak usecase.StreakGetter, stats usecase.StatsGetter, daily usecase.DailyChallengeGetter,
	problems domain.ProblemRepository, today func() time.Time, logger walog.Logger) *Handler {
	return &Handler{
		streak:   streak,
		stats:    stats,
		daily:    daily,
		problems: problems,
		today:    today,
		log:      logger,
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type problemResponse struct {
	*domain.Problem
	Examples []domain.ProblemExample `json:"examples"`
}

type dailyChallengeResponse struct {
	Date    string          `json:"date"`
	Problem *domain.Problem `json:"problem"`
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) StreakHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	streak, err := h.streak.Execute(r.Context(), userID, h.today())
	if err != nil {
		h.internalError(w, "streak", err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	summary, err := h.stats.Execute(r.Context(), userID, h.today())
	if err != nil {
		h.internalError(w, "stats", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) DailyChallengeHandler(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.daily.Execute(r.Context(), h.today())
	if err != nil {
		h.internalError(w, "daily challenge", err)
		return
	}
	if challenge == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Today's challenge not found."})
		return
	}
	writeJSON(w, http.StatusOK, dailyChallengeResponse{
		Date:    challenge.Date.Format(domain.DateLayout),
		Problem: challenge.Problem,
	})
}

func (h *Handler) ListProblemsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ProblemFilter{Search: query.Get("search")}
	if v := query.Get("difficulty"); v != "" {
		d, err := domain.ParseDifficulty(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
			return
		}
		filter.Difficulty = d
	}

	problems, err := h.problems.ListProblems(r.Context(), filter)
	if err != nil {
		h.internalError(w, "list problems", err)
		return
	}
	if problems == nil {
		problems = []*domain.Problem{}
	}
	writeJSON(w, http.StatusOK, problems)
}

func (h *Handler) ProblemHandler(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	problem, err := h.problems.FindBySlug(r.Context(), slug)
	if err != nil {
		h.internalError(w, "find problem", err)
		return
	}
	if problem == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Problem not found."})
		return
	}

	examples, err := h.problems.ListExamples(r.Context(), problem.ID)
	if err != nil {
		h.internalError(w, "list examples", err)
		return
	}
	if examples == nil {
		examples = []domain.ProblemExample{}
	}
	writeJSON(w, http.StatusOK, problemResponse{Problem: problem, Examples: examples})
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.log.Errorf("%s: %v", op, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
