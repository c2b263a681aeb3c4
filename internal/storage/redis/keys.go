package redis

import "fmt"

// Key prefix for all scoreboard data
const keyPrefix = "scoreboard"

// playerKey returns the Redis key for a Player hash
func playerKey(name string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the SET of player names
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// adminKey returns the fixed Redis key of the admin singleton
func adminKey() string {
	return fmt.Sprintf("%s:admin", keyPrefix)
}

// settingKey returns the fixed Redis key of the setting singleton hash
func settingKey() string {
	return fmt.Sprintf("%s:settings", keyPrefix)
}

// Hash fields
const (
	fieldScore       = "score"
	fieldCreatedAt   = "created_at"
	fieldUpdatedAt   = "updated_at"
	fieldHorsePoints = "horse_points"
	fieldReturnPoint = "return_point"
)
