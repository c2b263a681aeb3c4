package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mahjong-scoreboard/internal/services/auth"
	redisstorage "github.com/mcoot/mahjong-scoreboard/internal/storage/redis"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: an evening at the table, from first run to clearing the board
func (s *IntegrationSuite) TestCompleteScoreboardFlow() {
	// Step 1: Fresh install needs a password
	needsInit, err := s.app.AuthService.NeedsInit(s.ctx)
	s.Require().NoError(err)
	s.True(needsInit)

	// Step 2: Bootstrap the admin
	token, err := s.app.AuthService.InitPassword(s.ctx, "riichi!")
	s.Require().NoError(err)
	_, err = s.app.AuthService.ValidateToken(token)
	s.Require().NoError(err)

	// Step 3: Configure uma and oka
	s.Require().NoError(s.app.SettingsService.Save(s.ctx, []int{20, 10, -10, -20}, 30000))

	// Step 4: Record scores
	for name, score := range map[string]int{"East": 48000, "South": 27000, "West": 15000, "North": 10000} {
		_, created, err := s.app.ScoreboardService.UpdateScore(s.ctx, name, score)
		s.Require().NoError(err)
		s.True(created)
	}
	s.app.MockClock.Advance(time.Hour)
	_, created, err := s.app.ScoreboardService.UpdateScore(s.ctx, "East", 52000)
	s.Require().NoError(err)
	s.False(created)

	players, err := s.app.ScoreboardService.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 4)

	// Step 5: Reset after confirming the password
	s.Require().NoError(s.app.AuthService.ConfirmPassword(s.ctx, "riichi!"))
	n, err := s.app.ScoreboardService.ResetScores(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(4), n)

	score, err := s.app.ScoreboardService.GetScore(s.ctx, "East")
	s.Require().NoError(err)
	s.Equal(0, score)

	// Step 6: Clear the table
	n, err = s.app.ScoreboardService.DeleteAllPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(4), n)

	// Settings survive a player wipe
	setting, err := s.app.SettingsService.Get(s.ctx)
	s.Require().NoError(err)
	s.Equal(30000, setting.ReturnPoint)
}

func (s *IntegrationSuite) TestTokenExpiresWithMockClock() {
	token, err := s.app.AuthService.InitPassword(s.ctx, "riichi!")
	s.Require().NoError(err)

	s.app.MockClock.Advance(25 * time.Hour)
	_, err = s.app.AuthService.ValidateToken(token)
	s.ErrorIs(err, auth.ErrInvalidToken)
}

func (s *IntegrationSuite) TestCloseMemoryApp() {
	s.NoError(s.app.Close())
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer app.Close()

	needsInit, err := app.AuthService.NeedsInit(context.Background())
	require.NoError(t, err)
	require.True(t, needsInit)
}

type FactoryConfigSuite struct {
	suite.Suite
}

func TestFactoryConfigSuite(t *testing.T) {
	suite.Run(t, new(FactoryConfigSuite))
}

func (s *FactoryConfigSuite) TestRejectsUnknownStorageType() {
	_, err := New(Config{StorageType: "postgres", JWTSecret: []byte("x")})
	s.Error(err)
}

func (s *FactoryConfigSuite) TestPersistentStorageRequiresSecret() {
	_, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisstorage.Config{URL: "redis://localhost:1"}})
	s.ErrorContains(err, "JWTSecret")
}

func (s *FactoryConfigSuite) TestRedisRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis, JWTSecret: []byte("x")})
	s.ErrorContains(err, "RedisConfig")
}

func (s *FactoryConfigSuite) TestMongoRequiresConfig() {
	_, err := New(Config{StorageType: StorageTypeMongo, JWTSecret: []byte("x")})
	s.ErrorContains(err, "MongoConfig")
}

func (s *FactoryConfigSuite) TestRedisStorage() {
	mr := miniredis.RunT(s.T())
	cfg := redisstorage.DefaultConfig()
	cfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &cfg, JWTSecret: []byte("secret"), BcryptCost: 4})
	s.Require().NoError(err)
	defer app.Close()

	ctx := context.Background()
	_, created, err := app.ScoreboardService.UpdateScore(ctx, "Alice", 100)
	s.Require().NoError(err)
	s.True(created)

	score, err := app.ScoreboardService.GetScore(ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(100, score)
}
