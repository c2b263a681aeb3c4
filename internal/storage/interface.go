package storage

import (
	"context"
	"time"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
)

// Storage defines the interface for data persistence.
// Every implementation validates records with the model validators before
// writing them, and addresses the admin and setting singletons by a fixed key.
type Storage interface {
	// Player operations
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	// UpsertPlayerScore sets the score of the named player, creating the
	// player if needed. created reports whether this call created the record.
	UpsertPlayerScore(ctx context.Context, name string, score int, now time.Time) (player *model.Player, created bool, err error)
	// SearchPlayerNames returns names containing query, case-insensitively
	SearchPlayerNames(ctx context.Context, query string) ([]string, error)
	ResetPlayerScores(ctx context.Context, now time.Time) (int64, error)
	DeleteAllPlayers(ctx context.Context) (int64, error)

	// Admin operations
	GetAdmin(ctx context.Context) (*model.Admin, error)
	// CreateAdmin fails with model.ErrAdminExists if an admin is already stored
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	UpdateAdminPassword(ctx context.Context, passwordHash string, now time.Time) error

	// Setting operations
	GetSetting(ctx context.Context) (*model.Setting, error)
	SaveSetting(ctx context.Context, setting *model.Setting, now time.Time) error
}
