package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/api/apierr"
)

// writeError writes err as a JSON error response. Internal errors are logged
// with their detail here since the client only sees a generic message.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	apierr.WriteError(w, err)
}

// decodeJSON decodes the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apierr.NewInvalidRequestError("invalid request body")
	}
	return nil
}
