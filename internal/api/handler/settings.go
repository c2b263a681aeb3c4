package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/api/apierr"
	"github.com/mcoot/mahjong-scoreboard/internal/api/request"
	"github.com/mcoot/mahjong-scoreboard/internal/api/response"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/services/settings"
)

// SettingsHandler handles the table settings endpoints
type SettingsHandler struct {
	settings *settings.Service
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings *settings.Service, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settings.Get(r.Context())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SettingsFromModel(setting))
}

// Save handles POST /api/settings
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	horsePoints, err := request.ParseIntArray(req.HorsePoints, model.HorsePointCount)
	if err != nil {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("horsePoints must be an array of 4 integers"))
		return
	}
	returnPoint, err := request.ParseInt(req.ReturnPoint)
	if err != nil {
		writeError(h.logger, w, r, apierr.NewInvalidRequestError("returnPoint must be an integer"))
		return
	}

	if err := h.settings.Save(r.Context(), horsePoints, returnPoint); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "settings saved"})
}
