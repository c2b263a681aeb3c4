package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/mahjong-scoreboard/internal/factory"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, factory.StorageTypeMemory, cfg.StorageType)
	assert.Equal(t, "scoreboard", cfg.Mongo.Database)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.JWTSecret)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"HOST":         "127.0.0.1",
		"PORT":         "9090",
		"STORAGE_TYPE": "Mongo",
		"MONGO_URI":    "mongodb://db:27017",
		"MONGO_DB":     "mahjong",
		"JWT_SECRET":   "s3cret",
		"TOKEN_TTL":    "2h",
		"BCRYPT_COST":  "12",
		"LOG_LEVEL":    "debug",
		"CORS_ORIGIN":  "https://scores.example",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, factory.StorageTypeMongo, cfg.StorageType)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "mahjong", cfg.Mongo.Database)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "https://scores.example", cfg.CORSOrigin)
}

func TestFromLookupReportsAllBadValues(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{
		"PORT":      "eighty",
		"TOKEN_TTL": "a day",
		"LOG_LEVEL": "chatty",
	}))
	require.Error(t, err)
	assert.ErrorContains(t, err, "PORT")
	assert.ErrorContains(t, err, "TOKEN_TTL")
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestValidate(t *testing.T) {
	_, err := FromLookup(lookupFrom(map[string]string{"STORAGE_TYPE": "redis"}))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = FromLookup(lookupFrom(map[string]string{"STORAGE_TYPE": "sqlite"}))
	assert.ErrorContains(t, err, "STORAGE_TYPE")

	_, err = FromLookup(lookupFrom(map[string]string{"PORT": "70000"}))
	assert.ErrorContains(t, err, "PORT")

	_, err = FromLookup(lookupFrom(map[string]string{"TOKEN_TTL": "-1h"}))
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestFactoryConfig(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"STORAGE_TYPE": "redis",
		"REDIS_URL":    "redis://cache:6379/1",
		"JWT_SECRET":   "s3cret",
	}))
	require.NoError(t, err)

	fc := cfg.FactoryConfig(nil)
	assert.Equal(t, factory.StorageTypeRedis, fc.StorageType)
	require.NotNil(t, fc.RedisConfig)
	assert.Equal(t, "redis://cache:6379/1", fc.RedisConfig.URL)
	assert.Nil(t, fc.MongoConfig)
	assert.Equal(t, []byte("s3cret"), fc.JWTSecret)
}

func TestLoadReadsDotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DB=from_file\nCORS_ORIGIN=https://file.example\n"), 0o600))

	t.Setenv("CORS_ORIGIN", "https://env.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.Mongo.Database)
	// The process environment wins over the file
	assert.Equal(t, "https://env.example", cfg.CORSOrigin)

	_, set := os.LookupEnv("MONGO_DB")
	assert.False(t, set)
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
