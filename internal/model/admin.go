package model

import "time"

// Admin is the single administrator record. Its existence marks the system
// as initialized.
type Admin struct {
	ID            string `validate:"required"`
	PasswordHash  string `validate:"required"` // bcrypt hash
	IsInitialized bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
