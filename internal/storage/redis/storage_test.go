package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestPlayerKeysAndIndex() {
	_, _, err := s.storage.UpsertPlayerScore(s.Ctx, "Alice", 42, time.Now())
	s.Require().NoError(err)

	s.True(s.mini.Exists(playerKey("Alice")))
	s.Equal("42", s.mini.HGet(playerKey("Alice"), fieldScore))

	isMember, err := s.mini.SIsMember(playersIndexKey(), "Alice")
	s.Require().NoError(err)
	s.True(isMember)
}

func (s *StorageSuite) TestDeleteAllPlayersRemovesKeys() {
	_, _, _ = s.storage.UpsertPlayerScore(s.Ctx, "Alice", 1, time.Now())
	_, _, _ = s.storage.UpsertPlayerScore(s.Ctx, "Bob", 2, time.Now())

	_, err := s.storage.DeleteAllPlayers(s.Ctx)
	s.Require().NoError(err)

	s.False(s.mini.Exists(playerKey("Alice")))
	s.False(s.mini.Exists(playerKey("Bob")))
	s.False(s.mini.Exists(playersIndexKey()))
}

func (s *StorageSuite) TestAdminStoredUnderFixedKey() {
	err := s.storage.CreateAdmin(s.Ctx, &model.Admin{ID: "admin-1", PasswordHash: "hash"})
	s.Require().NoError(err)

	s.True(s.mini.Exists(adminKey()))
	keys := s.mini.Keys()
	s.Equal([]string{adminKey()}, keys)
}

func (s *StorageSuite) TestListPlayersSkipsDanglingIndexEntries() {
	_, _, err := s.storage.UpsertPlayerScore(s.Ctx, "Alice", 1, time.Now())
	s.Require().NoError(err)
	_, err = s.mini.SAdd(playersIndexKey(), "Ghost")
	s.Require().NoError(err)

	players, err := s.storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
	s.Equal("Alice", players[0].Name)
}

func (s *StorageSuite) TestResetPlayerScoresOnlyTouchesIndexedPlayers() {
	_, _, err := s.storage.UpsertPlayerScore(s.Ctx, "Alice", 9, time.Now())
	s.Require().NoError(err)
	// A hash with no index entry must not be revived by a reset
	s.mini.HSet(playerKey("Ghost"), fieldScore, "3")

	n, err := s.storage.ResetPlayerScores(s.Ctx, time.Now())
	s.Require().NoError(err)
	s.Equal(int64(1), n)
	s.Equal("0", s.mini.HGet(playerKey("Alice"), fieldScore))
	s.Equal("3", s.mini.HGet(playerKey("Ghost"), fieldScore))

	s.Require().NoError(s.storage.client.Del(s.Ctx, playerKey("Ghost")).Err())
	_, err = s.storage.DeleteAllPlayers(s.Ctx)
	s.Require().NoError(err)

	n, err = s.storage.ResetPlayerScores(s.Ctx, time.Now())
	s.Require().NoError(err)
	s.Zero(n)
	s.Empty(s.mini.Keys())
}
