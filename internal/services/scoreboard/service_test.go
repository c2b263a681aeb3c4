package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/mocks"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage/memory"
	"github.com/mcoot/mahjong-scoreboard/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestListPlayersEmpty() {
	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *ServiceSuite) TestGetScoreUnknownPlayerIsZero() {
	score, err := s.service.GetScore(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Equal(0, score)
}

func (s *ServiceSuite) TestGetScoreRequiresName() {
	_, err := s.service.GetScore(s.ctx, "   ")
	s.ErrorIs(err, ErrNameRequired)
}

func (s *ServiceSuite) TestUpdateScoreRoundTrip() {
	for _, score := range []int{0, 25000, -12300, 1 << 40} {
		_, _, err := s.service.UpdateScore(s.ctx, "Alice", score)
		s.Require().NoError(err)

		got, err := s.service.GetScore(s.ctx, "Alice")
		s.Require().NoError(err)
		s.Equal(score, got)
	}
}

func (s *ServiceSuite) TestUpdateScoreCreatedThenUpdated() {
	player, created, err := s.service.UpdateScore(s.ctx, "Alice", 100)
	s.Require().NoError(err)
	s.True(created)
	s.Equal("Alice", player.Name)
	s.Equal(100, player.Score)

	s.clock.Advance(time.Minute)

	player, created, err = s.service.UpdateScore(s.ctx, "Alice", 200)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(200, player.Score)
	s.True(player.UpdatedAt.After(player.CreatedAt))

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *ServiceSuite) TestUpdateScoreTrimsName() {
	_, created, err := s.service.UpdateScore(s.ctx, "  Bob ", 10)
	s.Require().NoError(err)
	s.True(created)

	_, created, err = s.service.UpdateScore(s.ctx, "Bob", 20)
	s.Require().NoError(err)
	s.False(created)

	score, err := s.service.GetScore(s.ctx, " Bob")
	s.Require().NoError(err)
	s.Equal(20, score)
}

func (s *ServiceSuite) TestUpdateScoreRequiresName() {
	_, _, err := s.service.UpdateScore(s.ctx, "", 10)
	s.ErrorIs(err, ErrNameRequired)
}

func (s *ServiceSuite) TestSearchNamesEmptyQuery() {
	_, _, err := s.service.UpdateScore(s.ctx, "Alice", 1)
	s.Require().NoError(err)

	names, err := s.service.SearchNames(s.ctx, "")
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}

func (s *ServiceSuite) TestSearchNamesCaseInsensitive() {
	for _, name := range []string{"Alice", "Malika", "Bob"} {
		_, _, err := s.service.UpdateScore(s.ctx, name, 1)
		s.Require().NoError(err)
	}

	names, err := s.service.SearchNames(s.ctx, "ALI")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"Alice", "Malika"}, names)

	names, err = s.service.SearchNames(s.ctx, "zzz")
	s.Require().NoError(err)
	s.NotNil(names)
	s.Empty(names)
}

func (s *ServiceSuite) TestResetScores() {
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, _, err := s.service.UpdateScore(s.ctx, name, 500)
		s.Require().NoError(err)
	}

	n, err := s.service.ResetScores(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 3)
	for _, p := range players {
		s.Equal(0, p.Score)
	}
}

func (s *ServiceSuite) TestDeleteAllPlayers() {
	for _, name := range []string{"Alice", "Bob"} {
		_, _, err := s.service.UpdateScore(s.ctx, name, 500)
		s.Require().NoError(err)
	}

	n, err := s.service.DeleteAllPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	players, err := s.service.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)

	_, err = s.storage.GetPlayer(s.ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
