package model

import "time"

// HorsePointCount is the number of placement bonuses (uma) a table uses
const HorsePointCount = 4

// Setting is the table configuration: the placement bonuses ("horse points")
// and the return point every score is measured against.
type Setting struct {
	HorsePoints []int `validate:"len=4"`
	ReturnPoint int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultSetting returns the configuration reported when none has been saved
func DefaultSetting() Setting {
	return Setting{
		HorsePoints: make([]int, HorsePointCount),
		ReturnPoint: 0,
	}
}
