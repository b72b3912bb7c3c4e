// Package handler exposes the poll as a JSON HTTP API.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/dishpoll/internal/auth"
	"github.com/mkale/dishpoll/internal/ballot"
	"github.com/mkale/dishpoll/internal/httpjson"
	"github.com/mkale/dishpoll/internal/metrics"
	"github.com/mkale/dishpoll/internal/middleware"
	"github.com/mkale/dishpoll/internal/models"
	"github.com/mkale/dishpoll/internal/service"
)

// Handler bundles the HTTP endpoints with their dependencies.
type Handler struct {
	poll   *service.PollService
	authn  *auth.Authenticator
	tokens *auth.JWTManager
	logger *slog.Logger
}

// New builds the router with the full middleware chain.
func New(poll *service.PollService, authn *auth.Authenticator, tokens *auth.JWTManager, logger *slog.Logger) http.Handler {
	h := &Handler{poll: poll, authn: authn, tokens: tokens, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))

	r.Get("/healthz", h.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", h.login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Get("/dishes", h.dishes)
			r.Get("/ballot", h.getBallot)
			r.Put("/ballot", h.putBallot)
			r.Delete("/ballot", h.clearBallot)
			r.Get("/leaderboard", h.leaderboard)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.authn.Authenticate(req.Username, req.Password)
	if err != nil {
		h.logger.Warn("login failed", "username", req.Username)
		httpjson.Error(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{Token: token, User: *user})
}

func (h *Handler) dishes(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.poll.Dishes(r.Context()))
}

type ballotResponse struct {
	Votes models.Ballot `json:"votes"`
}

func (h *Handler) getBallot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stored, err := h.poll.Ballot(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load ballot", "user_id", userID, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to load ballot")
		return
	}
	if stored == nil {
		stored = models.Ballot{}
	}
	httpjson.Write(w, http.StatusOK, ballotResponse{Votes: stored})
}

type submitBallotRequest struct {
	Votes models.Ballot `json:"votes"`
}

func (h *Handler) putBallot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req submitBallotRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.poll.SubmitBallot(r.Context(), userID, req.Votes)
	switch {
	case errors.Is(err, ballot.ErrIncompleteSelection), errors.Is(err, ballot.ErrDuplicateRank):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.logger.Error("failed to store ballot", "user_id", userID, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to save ballot")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) clearBallot(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.poll.ClearBallot(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear ballot", "user_id", userID, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to clear ballot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	rows, err := h.poll.Leaderboard(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to compute leaderboard", "user_id", userID, "error", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to compute leaderboard")
		return
	}
	httpjson.Write(w, http.StatusOK, rows)
}
