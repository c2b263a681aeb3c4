package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// trimmed rejects leading or trailing whitespace
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.TrimSpace(s) == s
	})
	return v
}

// ValidatePlayer checks a player before it is written to storage
func ValidatePlayer(p *Player) error {
	if p == nil {
		return fmt.Errorf("%w: nil player", ErrInvalidPlayer)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlayer, err)
	}
	return nil
}

// ValidateAdmin checks an admin record before it is written to storage
func ValidateAdmin(a *Admin) error {
	if a == nil {
		return fmt.Errorf("%w: nil admin", ErrInvalidAdmin)
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAdmin, err)
	}
	return nil
}

// ValidateSetting checks a setting before it is written to storage.
// HorsePoints must hold exactly HorsePointCount values.
func ValidateSetting(s *Setting) error {
	if s == nil {
		return fmt.Errorf("%w: nil setting", ErrInvalidSetting)
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return nil
}
