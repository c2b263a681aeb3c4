package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/api/middleware"
	"github.com/mcoot/mahjong-scoreboard/internal/api/request"
	"github.com/mcoot/mahjong-scoreboard/internal/api/response"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
)

// AdminHandler handles the admin password lifecycle and the destructive
// bulk operations that require it
type AdminHandler struct {
	auth       *auth.Service
	scoreboard *scoreboard.Service
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(auth *auth.Service, scoreboard *scoreboard.Service, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:       auth,
		scoreboard: scoreboard,
		logger:     logger,
	}
}

// CheckInit handles GET /api/check-init
func (h *AdminHandler) CheckInit(w http.ResponseWriter, r *http.Request) {
	needsInit, err := h.auth.NeedsInit(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CheckInit{NeedInit: needsInit})
}

// InitPassword handles POST /api/init-password
func (h *AdminHandler) InitPassword(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	token, err := h.auth.InitPassword(r.Context(), req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Token{Token: token})
}

// Authenticate handles POST /api/auth
func (h *AdminHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	token, err := h.auth.Authenticate(r.Context(), req.Password)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Token{Token: token})
}

// ChangePassword handles POST /api/change-password
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req request.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	token, err := h.auth.ChangePassword(r.Context(), req.OldPassword, req.NewPassword)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	h.logAction(r, "change-password")

	response.JSON(w, http.StatusOK, response.ChangePassword{
		Message: "password changed",
		Token:   token,
	})
}

// ResetScores handles POST /api/reset-scores
func (h *AdminHandler) ResetScores(w http.ResponseWriter, r *http.Request) {
	if !h.confirm(w, r) {
		return
	}

	if _, err := h.scoreboard.ResetScores(r.Context()); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	h.logAction(r, "reset-scores")

	response.JSON(w, http.StatusOK, response.Message{Message: "all scores reset"})
}

// DeleteAllPlayers handles POST /api/delete-all-players
func (h *AdminHandler) DeleteAllPlayers(w http.ResponseWriter, r *http.Request) {
	if !h.confirm(w, r) {
		return
	}

	if _, err := h.scoreboard.DeleteAllPlayers(r.Context()); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	h.logAction(r, "delete-all-players")

	response.JSON(w, http.StatusOK, response.Message{Message: "all players deleted"})
}

// confirm re-checks the admin password carried in the body. It writes the
// error response itself and reports whether the caller may proceed.
func (h *AdminHandler) confirm(w http.ResponseWriter, r *http.Request) bool {
	var req request.PasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return false
	}

	if err := h.auth.ConfirmPassword(r.Context(), req.Password); err != nil {
		h.logger.Warn("destructive action rejected",
			slog.String("path", r.URL.Path),
			slog.String("admin_id", middleware.GetAdminID(r.Context())),
			slog.String("reason", err.Error()))
		writeError(h.logger, w, r, err)
		return false
	}
	return true
}

// logAction records a guarded admin action against the token's admin ID
func (h *AdminHandler) logAction(r *http.Request, action string) {
	h.logger.Info("admin action",
		slog.String("action", action),
		slog.String("admin_id", middleware.GetAdminID(r.Context())))
}
