package handler

import (
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/api/apierr"
	"github.com/mcoot/mahjong-scoreboard/internal/api/response"
)

// Health handles GET /api/health
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// Favicon handles GET /favicon.ico so browsers stop asking
func Favicon(w http.ResponseWriter, _ *http.Request) {
	response.NoContent(w)
}

// NotFound answers unmatched routes with a JSON error
func NotFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError())
}
