package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/mahjong-scoreboard/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// CORS creates CORS middleware for the API
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return middleware.CORS(allowedOrigin)
}
