package scoreboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/clock"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// ErrNameRequired is returned when a player name is empty after trimming
var ErrNameRequired = errors.New("player name is required")

// Service handles player scores
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new scoreboard Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// ListPlayers returns every player in store order
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []*model.Player{}
	}
	return players, nil
}

// GetScore returns the score for name. A player with no record has score 0.
func (s *Service) GetScore(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}

	player, err := s.storage.GetPlayer(ctx, name)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return player.Score, nil
}

// UpdateScore sets the score for name, creating the player if needed.
// created reports whether a new record was made.
func (s *Service) UpdateScore(ctx context.Context, name string, score int) (*model.Player, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrNameRequired
	}

	player, created, err := s.storage.UpsertPlayerScore(ctx, name, score, s.clock.Now())
	if err != nil {
		return nil, false, err
	}

	s.logger.Debug("score updated",
		slog.String("name", name),
		slog.Int("score", score),
		slog.Bool("created", created))
	return player, created, nil
}

// SearchNames returns names containing query, ignoring case.
// An empty query matches nothing and skips the store.
func (s *Service) SearchNames(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return []string{}, nil
	}

	names, err := s.storage.SearchPlayerNames(ctx, query)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ResetScores sets every score to zero and returns how many players it touched
func (s *Service) ResetScores(ctx context.Context) (int64, error) {
	n, err := s.storage.ResetPlayerScores(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	s.logger.Info("scores reset", slog.Int64("players", n))
	return n, nil
}

// DeleteAllPlayers removes every player and returns how many were removed
func (s *Service) DeleteAllPlayers(ctx context.Context) (int64, error) {
	n, err := s.storage.DeleteAllPlayers(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("players deleted", slog.Int64("players", n))
	return n, nil
}
