package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[string]*model.Player
	admin   *model.Admin
	setting *model.Setting
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		cp := *p
		players = append(players, &cp)
	}
	return players, nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Storage) UpsertPlayerScore(ctx context.Context, name string, score int, now time.Time) (*model.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[name]
	if !ok {
		player = &model.Player{Name: name, CreatedAt: now}
	}
	updated := *player
	updated.Score = score
	updated.UpdatedAt = now
	if err := model.ValidatePlayer(&updated); err != nil {
		return nil, false, err
	}

	s.players[name] = &updated
	cp := updated
	return &cp, !ok, nil
}

func (s *Storage) SearchPlayerNames(ctx context.Context, query string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(query)
	names := []string{}
	for name := range s.players {
		if strings.Contains(strings.ToLower(name), needle) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Storage) ResetPlayerScores(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.players {
		p.Score = 0
		p.UpdatedAt = now
	}
	return int64(len(s.players)), nil
}

func (s *Storage) DeleteAllPlayers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.players))
	s.players = make(map[string]*model.Player)
	return n, nil
}

// Admin operations

func (s *Storage) GetAdmin(ctx context.Context) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return nil, model.ErrAdminNotFound
	}
	cp := *s.admin
	return &cp, nil
}

func (s *Storage) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	if err := model.ValidateAdmin(admin); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin != nil {
		return model.ErrAdminExists
	}
	cp := *admin
	s.admin = &cp
	return nil
}

func (s *Storage) UpdateAdminPassword(ctx context.Context, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		return model.ErrAdminNotFound
	}
	updated := *s.admin
	updated.PasswordHash = passwordHash
	updated.UpdatedAt = now
	if err := model.ValidateAdmin(&updated); err != nil {
		return err
	}
	s.admin = &updated
	return nil
}

// Setting operations

func (s *Storage) GetSetting(ctx context.Context) (*model.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.setting == nil {
		return nil, model.ErrSettingNotFound
	}
	cp := *s.setting
	cp.HorsePoints = append([]int(nil), s.setting.HorsePoints...)
	return &cp, nil
}

func (s *Storage) SaveSetting(ctx context.Context, setting *model.Setting, now time.Time) error {
	if err := model.ValidateSetting(setting); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := model.Setting{
		HorsePoints: append([]int(nil), setting.HorsePoints...),
		ReturnPoint: setting.ReturnPoint,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.setting != nil {
		saved.CreatedAt = s.setting.CreatedAt
	}
	s.setting = &saved
	return nil
}
