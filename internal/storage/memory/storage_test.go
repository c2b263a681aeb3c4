package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	_, _, err := s.storage.UpsertPlayerScore(s.Ctx, "Alice", 5, time.Now())
	s.Require().NoError(err)

	p, err := s.storage.GetPlayer(s.Ctx, "Alice")
	s.Require().NoError(err)
	p.Score = 999

	again, err := s.storage.GetPlayer(s.Ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(5, again.Score)
}

func (s *StorageSuite) TestGetSettingReturnsCopy() {
	s.Require().NoError(s.storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{1, 2, 3, 4}}, time.Now()))

	got, err := s.storage.GetSetting(s.Ctx)
	s.Require().NoError(err)
	got.HorsePoints[0] = 100

	again, err := s.storage.GetSetting(s.Ctx)
	s.Require().NoError(err)
	s.Equal(1, again.HorsePoints[0])
}
