package factory

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/clock"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	"github.com/mcoot/mahjong-scoreboard/internal/services/scoreboard"
	"github.com/mcoot/mahjong-scoreboard/internal/services/settings"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/memory"
	mongostorage "github.com/mcoot/mahjong-scoreboard/internal/storage/mongo"
	redisstorage "github.com/mcoot/mahjong-scoreboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeMongo  = "mongo"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService       *auth.Service
	ScoreboardService *scoreboard.Service
	SettingsService   *settings.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// Zero fields fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "mongo")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// MongoConfig holds MongoDB connection settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
	// JWTSecret signs bearer tokens. Required for persistent storage; with
	// memory storage a random secret is generated when empty.
	JWTSecret []byte
	// BcryptCost is the bcrypt work factor (optional, 0 means bcrypt.DefaultCost)
	BcryptCost int
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	secret := cfg.JWTSecret
	if len(secret) == 0 {
		if storageType != StorageTypeMemory {
			return nil, errors.New("JWTSecret required when StorageType is not memory")
		}
		generated, err := randomSecret()
		if err != nil {
			return nil, err
		}
		logger.Warn("no JWT secret configured, using a random one; tokens will not survive a restart")
		secret = generated
	}

	// Create storage based on type
	var store storage.Storage
	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		mongoStore, err := mongostorage.New(*cfg.MongoConfig)
		if err != nil {
			return nil, err
		}
		store = mongoStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'mongo'")
	}

	clk := clock.New()
	app, err := newWithDependencies(store, clk, auth.NewBcryptHasher(cfg.BcryptCost), secret, cfg.AuthConfig, logger)
	if err != nil {
		_ = closeStorage(store)
		return nil, err
	}

	logger.Info("application wired", slog.String("storage", storageType))
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, hasher auth.PasswordHasher, secret []byte, authCfg auth.Config, logger *slog.Logger) (*App, error) {
	tokens, err := auth.NewJWTIssuer(secret, clk)
	if err != nil {
		return nil, err
	}

	return &App{
		Storage:           store,
		Clock:             clk,
		AuthService:       auth.New(store, hasher, tokens, clk, authCfg, logger),
		ScoreboardService: scoreboard.New(store, clk, logger),
		SettingsService:   settings.New(store, clk, logger),
	}, nil
}

// Close releases the storage connection, if the backend holds one
func (a *App) Close() error {
	return closeStorage(a.Storage)
}

func closeStorage(store storage.Storage) error {
	if closer, ok := store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func randomSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate jwt secret: %w", err)
	}
	return secret, nil
}
