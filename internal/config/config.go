package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/mahjong-scoreboard/internal/api"
	"github.com/mcoot/mahjong-scoreboard/internal/factory"
	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	mongostorage "github.com/mcoot/mahjong-scoreboard/internal/storage/mongo"
	redisstorage "github.com/mcoot/mahjong-scoreboard/internal/storage/redis"
)

// Config is the server configuration read from the environment
type Config struct {
	Server      api.ServerConfig
	StorageType string
	Redis       redisstorage.Config
	Mongo       mongostorage.Config
	Auth        auth.Config
	JWTSecret   string
	BcryptCost  int
	LogLevel    slog.Level
	CORSOrigin  string
}

// Default returns the configuration used when no variables are set
func Default() Config {
	return Config{
		Server:      api.DefaultServerConfig(),
		StorageType: factory.StorageTypeMemory,
		Redis:       redisstorage.DefaultConfig(),
		Mongo:       mongostorage.DefaultConfig(),
		Auth:        auth.DefaultConfig(),
		BcryptCost:  10,
		LogLevel:    slog.LevelInfo,
		CORSOrigin:  "*",
	}
}

// Load reads configuration from the process environment, falling back to
// values in the given dotenv files (".env" if none are named). Process
// variables win over file values and the process environment is not modified.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileValues := map[string]string{}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range values {
			if _, ok := fileValues[k]; !ok {
				fileValues[k] = v
			}
		}
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	})
}

// FromLookup builds a Config from lookup, which reports a variable's value
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	env := envReader{lookup: lookup}

	cfg.Server.Host = env.string("HOST", cfg.Server.Host)
	cfg.Server.Port = env.int("PORT", cfg.Server.Port)
	cfg.StorageType = strings.ToLower(env.string("STORAGE_TYPE", cfg.StorageType))
	cfg.Redis.URL = env.string("REDIS_URL", cfg.Redis.URL)
	cfg.Mongo.URI = env.string("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.Database = env.string("MONGO_DB", cfg.Mongo.Database)
	cfg.JWTSecret = env.string("JWT_SECRET", "")
	cfg.Auth.TokenTTL = env.duration("TOKEN_TTL", cfg.Auth.TokenTTL)
	cfg.BcryptCost = env.int("BCRYPT_COST", cfg.BcryptCost)
	cfg.CORSOrigin = env.string("CORS_ORIGIN", cfg.CORSOrigin)

	if level, ok := env.get("LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			env.errs = append(env.errs, fmt.Errorf("LOG_LEVEL: %w", err))
		}
	}

	if err := errors.Join(env.errs...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the combination of settings
func (c Config) Validate() error {
	switch c.StorageType {
	case factory.StorageTypeMemory, factory.StorageTypeRedis, factory.StorageTypeMongo:
	default:
		return fmt.Errorf("STORAGE_TYPE must be memory, redis or mongo, got %q", c.StorageType)
	}
	if c.StorageType != factory.StorageTypeMemory && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when STORAGE_TYPE=%s", c.StorageType)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Server.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// FactoryConfig converts the configuration into factory settings
func (c Config) FactoryConfig(logger *slog.Logger) factory.Config {
	cfg := factory.Config{
		AuthConfig:  c.Auth,
		Logger:      logger,
		StorageType: c.StorageType,
		JWTSecret:   []byte(c.JWTSecret),
		BcryptCost:  c.BcryptCost,
	}
	switch c.StorageType {
	case factory.StorageTypeRedis:
		redisCfg := c.Redis
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeMongo:
		mongoCfg := c.Mongo
		cfg.MongoConfig = &mongoCfg
	}
	return cfg
}

// envReader collects parse errors so every bad variable is reported at once
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) string(key, fallback string) string {
	if v, ok := e.get(key); ok {
		return v
	}
	return fallback
}

func (e *envReader) int(key string, fallback int) int {
	v, ok := e.get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not an integer", key, v))
		return fallback
	}
	return n
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := e.get(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a duration", key, v))
		return fallback
	}
	return d
}
