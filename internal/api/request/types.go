package request

import "encoding/json"

// UpdateScoreRequest is the request body for setting a player's score.
// NewScore is kept raw so its integer-ness can be checked exactly.
type UpdateScoreRequest struct {
	Name     string          `json:"name"`
	NewScore json.RawMessage `json:"newScore"`
}

// PasswordRequest is the request body for endpoints taking only a password
type PasswordRequest struct {
	Password string `json:"password"`
}

// ChangePasswordRequest is the request body for changing the admin password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// SettingsRequest is the request body for saving settings
type SettingsRequest struct {
	HorsePoints json.RawMessage `json:"horsePoints"`
	ReturnPoint json.RawMessage `json:"returnPoint"`
}
