// Package storagetest holds behaviour tests shared by every storage backend.
package storagetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// Suite runs the storage contract against a backend. Backends embed it and
// set Storage in their own SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

var (
	t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func (s *Suite) upsert(name string, score int) {
	_, _, err := s.Storage.UpsertPlayerScore(s.Ctx, name, score, t0)
	s.Require().NoError(err)
}

// Player tests

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.Ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestUpsertCreatesThenUpdates() {
	player, created, err := s.Storage.UpsertPlayerScore(s.Ctx, "Alice", 100, t0)
	s.Require().NoError(err)
	s.True(created)
	s.Equal("Alice", player.Name)
	s.Equal(100, player.Score)

	player, created, err = s.Storage.UpsertPlayerScore(s.Ctx, "Alice", -25, t1)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(-25, player.Score)
	s.True(player.CreatedAt.Equal(t0))
	s.True(player.UpdatedAt.Equal(t1))

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 1)

	got, err := s.Storage.GetPlayer(s.Ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(-25, got.Score)
}

func (s *Suite) TestUpsertRejectsInvalidName() {
	_, _, err := s.Storage.UpsertPlayerScore(s.Ctx, "", 1, t0)
	s.ErrorIs(err, model.ErrInvalidPlayer)

	_, _, err = s.Storage.UpsertPlayerScore(s.Ctx, " padded ", 1, t0)
	s.ErrorIs(err, model.ErrInvalidPlayer)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestConcurrentUpsertCreatesOnce() {
	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		creates int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, created, err := s.Storage.UpsertPlayerScore(s.Ctx, "Racer", score, t0)
			if err != nil {
				return
			}
			if created {
				mu.Lock()
				creates++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, creates)
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 1)
}

func (s *Suite) TestListPlayers() {
	s.upsert("Alice", 1)
	s.upsert("Bob", 2)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)

	scores := map[string]int{}
	for _, p := range players {
		scores[p.Name] = p.Score
	}
	s.Equal(map[string]int{"Alice": 1, "Bob": 2}, scores)
}

func (s *Suite) TestListPlayersEmpty() {
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *Suite) TestSearchPlayerNamesIsCaseInsensitive() {
	s.upsert("Alice", 1)
	s.upsert("Malik", 2)
	s.upsert("Bob", 3)

	names, err := s.Storage.SearchPlayerNames(s.Ctx, "ALI")
	s.Require().NoError(err)
	sort.Strings(names)
	s.Equal([]string{"Alice", "Malik"}, names)
}

func (s *Suite) TestSearchPlayerNamesTreatsQueryLiterally() {
	s.upsert("a.b", 1)
	s.upsert("axb", 2)

	names, err := s.Storage.SearchPlayerNames(s.Ctx, "a.b")
	s.Require().NoError(err)
	s.Equal([]string{"a.b"}, names)
}

func (s *Suite) TestSearchPlayerNamesNoMatch() {
	s.upsert("Alice", 1)

	names, err := s.Storage.SearchPlayerNames(s.Ctx, "zzz")
	s.Require().NoError(err)
	s.Empty(names)
}

func (s *Suite) TestResetPlayerScores() {
	s.upsert("Alice", 10)
	s.upsert("Bob", -5)

	n, err := s.Storage.ResetPlayerScores(s.Ctx, t1)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
	for _, p := range players {
		s.Equal(0, p.Score, p.Name)
	}
}

func (s *Suite) TestDeleteAllPlayers() {
	s.upsert("Alice", 10)
	s.upsert("Bob", -5)

	n, err := s.Storage.DeleteAllPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)

	_, err = s.Storage.GetPlayer(s.Ctx, "Alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// assertListedMatchesReadable checks that a player can be fetched by name
// exactly when it appears in the full listing.
func (s *Suite) assertListedMatchesReadable(names []string) {
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	listed := make(map[string]bool, len(players))
	for _, p := range players {
		listed[p.Name] = true
	}

	for _, name := range names {
		_, err := s.Storage.GetPlayer(s.Ctx, name)
		if listed[name] {
			s.NoError(err, name)
		} else {
			s.ErrorIs(err, model.ErrPlayerNotFound, name)
		}
	}
}

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}
	return names
}

func (s *Suite) TestDeleteAllDuringUpsertsLeavesNoStragglers() {
	names := playerNames(200)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, name := range names {
			_, _, _ = s.Storage.UpsertPlayerScore(s.Ctx, name, 7, t0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 30; i++ {
			_, _ = s.Storage.DeleteAllPlayers(s.Ctx)
		}
	}()
	wg.Wait()

	s.assertListedMatchesReadable(names)

	_, err := s.Storage.DeleteAllPlayers(s.Ctx)
	s.Require().NoError(err)
	for _, name := range names {
		_, err := s.Storage.GetPlayer(s.Ctx, name)
		s.ErrorIs(err, model.ErrPlayerNotFound, name)
	}

	_, created, err := s.Storage.UpsertPlayerScore(s.Ctx, names[0], 1, t1)
	s.Require().NoError(err)
	s.True(created)
}

func (s *Suite) TestResetDuringDeleteDoesNotResurrectPlayers() {
	names := playerNames(100)
	for _, name := range names {
		s.upsert(name, 5)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 30; i++ {
			_, _ = s.Storage.ResetPlayerScores(s.Ctx, t1)
		}
	}()
	go func() {
		defer wg.Done()
		_, _ = s.Storage.DeleteAllPlayers(s.Ctx)
	}()
	wg.Wait()

	s.assertListedMatchesReadable(names)
	players, err := s.Storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Admin tests

func (s *Suite) TestGetAdminNotFound() {
	_, err := s.Storage.GetAdmin(s.Ctx)
	s.ErrorIs(err, model.ErrAdminNotFound)
}

func (s *Suite) TestCreateAndGetAdmin() {
	admin := &model.Admin{ID: "admin-1", PasswordHash: "hash", IsInitialized: true, CreatedAt: t0, UpdatedAt: t0}
	s.Require().NoError(s.Storage.CreateAdmin(s.Ctx, admin))

	got, err := s.Storage.GetAdmin(s.Ctx)
	s.Require().NoError(err)
	s.Equal("admin-1", got.ID)
	s.Equal("hash", got.PasswordHash)
	s.True(got.IsInitialized)
}

func (s *Suite) TestCreateAdminTwiceFails() {
	s.Require().NoError(s.Storage.CreateAdmin(s.Ctx, &model.Admin{ID: "admin-1", PasswordHash: "hash"}))

	err := s.Storage.CreateAdmin(s.Ctx, &model.Admin{ID: "admin-2", PasswordHash: "other"})
	s.ErrorIs(err, model.ErrAdminExists)

	got, err := s.Storage.GetAdmin(s.Ctx)
	s.Require().NoError(err)
	s.Equal("admin-1", got.ID)
}

func (s *Suite) TestCreateAdminRejectsInvalid() {
	err := s.Storage.CreateAdmin(s.Ctx, &model.Admin{ID: "admin-1"})
	s.ErrorIs(err, model.ErrInvalidAdmin)

	_, err = s.Storage.GetAdmin(s.Ctx)
	s.ErrorIs(err, model.ErrAdminNotFound)
}

func (s *Suite) TestUpdateAdminPassword() {
	s.Require().NoError(s.Storage.CreateAdmin(s.Ctx, &model.Admin{ID: "admin-1", PasswordHash: "old", CreatedAt: t0, UpdatedAt: t0}))

	s.Require().NoError(s.Storage.UpdateAdminPassword(s.Ctx, "new", t1))

	got, err := s.Storage.GetAdmin(s.Ctx)
	s.Require().NoError(err)
	s.Equal("admin-1", got.ID)
	s.Equal("new", got.PasswordHash)
	s.True(got.UpdatedAt.Equal(t1))
}

func (s *Suite) TestUpdateAdminPasswordWithoutAdmin() {
	err := s.Storage.UpdateAdminPassword(s.Ctx, "new", t1)
	s.ErrorIs(err, model.ErrAdminNotFound)
}

// Setting tests

func (s *Suite) TestGetSettingNotFound() {
	_, err := s.Storage.GetSetting(s.Ctx)
	s.ErrorIs(err, model.ErrSettingNotFound)
}

func (s *Suite) TestSaveAndGetSetting() {
	err := s.Storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{20, 10, -10, -20}, ReturnPoint: 30000}, t0)
	s.Require().NoError(err)

	got, err := s.Storage.GetSetting(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]int{20, 10, -10, -20}, got.HorsePoints)
	s.Equal(30000, got.ReturnPoint)
}

func (s *Suite) TestSaveSettingReplacesExisting() {
	s.Require().NoError(s.Storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{1, 2, 3, 4}, ReturnPoint: 5}, t0))
	s.Require().NoError(s.Storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{5, 6, 7, 8}, ReturnPoint: 9}, t1))

	got, err := s.Storage.GetSetting(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]int{5, 6, 7, 8}, got.HorsePoints)
	s.Equal(9, got.ReturnPoint)
	s.True(got.CreatedAt.Equal(t0))
	s.True(got.UpdatedAt.Equal(t1))
}

func (s *Suite) TestSaveSettingRejectsInvalid() {
	s.Require().NoError(s.Storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{1, 2, 3, 4}, ReturnPoint: 5}, t0))

	err := s.Storage.SaveSetting(s.Ctx, &model.Setting{HorsePoints: []int{1, 2, 3}, ReturnPoint: 5}, t1)
	s.ErrorIs(err, model.ErrInvalidSetting)

	got, err := s.Storage.GetSetting(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]int{1, 2, 3, 4}, got.HorsePoints)
}
