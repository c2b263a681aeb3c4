package model

import "time"

// Player is a named participant and their running score.
// Name is the identity key: unique and stored trimmed.
type Player struct {
	Name      string `validate:"required,trimmed"`
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
