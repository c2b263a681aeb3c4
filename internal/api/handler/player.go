package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/mahjong-scoreboard/internal/api/apierr"
	"github.com/mcoot/mahjong-scoreboard/internal/api/request"
	"github.com/mcoot/mahjong-scoreboard/internal/api/response"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
)

// PlayerHandler handles player score endpoints
type PlayerHandler struct {
	scoreboard *scoreboard.Service
	logger     *slog.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(scoreboard *scoreboard.Service, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{
		scoreboard: scoreboard,
		logger:     logger,
	}
}

// GetAll handles GET /api/get-all
func (h *PlayerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	players, err := h.scoreboard.ListPlayers(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerScoresFromModel(players))
}

// GetSingle handles GET /api/get-single?name=
func (h *PlayerHandler) GetSingle(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("name is required"))
		return
	}

	score, err := h.scoreboard.GetScore(r.Context(), name)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Score{Score: score})
}

// Update handles PUT /api/update
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("name and newScore are required"))
		return
	}
	score, err := request.ParseInt(req.NewScore)
	if errors.Is(err, request.ErrMissing) {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("name and newScore are required"))
		return
	}
	if err != nil {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("newScore must be an integer"))
		return
	}

	player, created, err := h.scoreboard.UpdateScore(r.Context(), req.Name, score)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.PlayerFromModel(player))
}

// SearchNames handles GET /api/search-names?q=
func (h *PlayerHandler) SearchNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.scoreboard.SearchNames(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, names)
}
