package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/mahjong-scoreboard/internal/api/handler"
	"github.com/mcoot/mahjong-scoreboard/internal/api/middleware"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
	"github.com/mcoot/mahjong-scoreboard/internal/services/settings"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	ScoreboardService *scoreboard.Service
	SettingsService   *settings.Service
	// CORSOrigin is the allowed cross-origin caller, "*" if empty
	CORSOrigin string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.ScoreboardService, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.AuthService, cfg.ScoreboardService, cfg.Logger)
	settingsHandler := handler.NewSettingsHandler(cfg.SettingsService, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	guard := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	r.HandleFunc("/favicon.ico", handler.Favicon).Methods(http.MethodGet)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes
	api.HandleFunc("/get-all", playerHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/get-single", playerHandler.GetSingle).Methods(http.MethodGet)
	api.HandleFunc("/update", playerHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/search-names", playerHandler.SearchNames).Methods(http.MethodGet)

	// Admin bootstrap and login
	api.HandleFunc("/check-init", adminHandler.CheckInit).Methods(http.MethodGet)
	api.HandleFunc("/init-password", adminHandler.InitPassword).Methods(http.MethodPost)
	api.HandleFunc("/auth", adminHandler.Authenticate).Methods(http.MethodPost)

	// Protected routes
	api.Handle("/settings", guard(settingsHandler.Get)).Methods(http.MethodGet)
	api.Handle("/settings", guard(settingsHandler.Save)).Methods(http.MethodPost)
	api.Handle("/change-password", guard(adminHandler.ChangePassword)).Methods(http.MethodPost)
	api.Handle("/reset-scores", guard(adminHandler.ResetScores)).Methods(http.MethodPost)
	api.Handle("/delete-all-players", guard(adminHandler.DeleteAllPlayers)).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	// CORS wraps the whole router so preflight requests never reach route matching
	return middleware.CORS(cfg.CORSOrigin)(r)
}
