package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlayer(t *testing.T) {
	assert.NoError(t, ValidatePlayer(&Player{Name: "Alice", Score: 10}))
	assert.NoError(t, ValidatePlayer(&Player{Name: "Alice", Score: -3}))

	assert.ErrorIs(t, ValidatePlayer(&Player{Name: ""}), ErrInvalidPlayer)
	assert.ErrorIs(t, ValidatePlayer(&Player{Name: " Alice"}), ErrInvalidPlayer)
	assert.ErrorIs(t, ValidatePlayer(&Player{Name: "Alice\t"}), ErrInvalidPlayer)
	assert.ErrorIs(t, ValidatePlayer(nil), ErrInvalidPlayer)
}

func TestValidateAdmin(t *testing.T) {
	assert.NoError(t, ValidateAdmin(&Admin{ID: "a1", PasswordHash: "$2a$10$hash"}))

	assert.ErrorIs(t, ValidateAdmin(&Admin{ID: "a1"}), ErrInvalidAdmin)
	assert.ErrorIs(t, ValidateAdmin(&Admin{PasswordHash: "hash"}), ErrInvalidAdmin)
	assert.ErrorIs(t, ValidateAdmin(nil), ErrInvalidAdmin)
}

func TestValidateSetting(t *testing.T) {
	assert.NoError(t, ValidateSetting(&Setting{HorsePoints: []int{30, 10, -10, -30}, ReturnPoint: 30000}))

	assert.ErrorIs(t, ValidateSetting(&Setting{HorsePoints: []int{1, 2, 3}}), ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSetting(&Setting{HorsePoints: []int{1, 2, 3, 4, 5}}), ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSetting(&Setting{}), ErrInvalidSetting)
	assert.ErrorIs(t, ValidateSetting(nil), ErrInvalidSetting)
}

func TestDefaultSettingIsValid(t *testing.T) {
	s := DefaultSetting()
	assert.Equal(t, []int{0, 0, 0, 0}, s.HorsePoints)
	assert.Equal(t, 0, s.ReturnPoint)
	assert.NoError(t, ValidateSetting(&s))
}
