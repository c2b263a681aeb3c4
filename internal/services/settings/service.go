package settings

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/clock"
	"github.com/mcoot/mahjong-scoreboard/internal/model"
	"github.com/mcoot/mahjong-scoreboard/internal/storage"
)

// Service reads and writes the table settings
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new settings Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Get returns the saved settings, or the defaults if none were saved
func (s *Service) Get(ctx context.Context) (*model.Setting, error) {
	setting, err := s.storage.GetSetting(ctx)
	if errors.Is(err, model.ErrSettingNotFound) {
		defaults := model.DefaultSetting()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// Save replaces the settings
func (s *Service) Save(ctx context.Context, horsePoints []int, returnPoint int) error {
	setting := &model.Setting{
		HorsePoints: horsePoints,
		ReturnPoint: returnPoint,
	}
	if err := model.ValidateSetting(setting); err != nil {
		return err
	}

	if err := s.storage.SaveSetting(ctx, setting, s.clock.Now()); err != nil {
		return err
	}

	s.logger.Info("settings saved",
		slog.Any("horse_points", horsePoints),
		slog.Int("return_point", returnPoint))
	return nil
}
