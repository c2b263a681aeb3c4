package response

import (
	"time"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
)

// PlayerScore is one entry of the player list
type PlayerScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayerScoresFromModel converts players to list entries, never returning nil
func PlayerScoresFromModel(players []*model.Player) []PlayerScore {
	scores := make([]PlayerScore, len(players))
	for i, p := range players {
		scores[i] = PlayerScore{Name: p.Name, Score: p.Score}
	}
	return scores
}

// Player is the full player record returned after a score update
type Player struct {
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:      p.Name,
		Score:     p.Score,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Score is the response for a single player lookup
type Score struct {
	Score int `json:"score"`
}

// CheckInit reports whether the admin password still has to be set
type CheckInit struct {
	NeedInit bool `json:"needInit"`
}

// Token carries a freshly issued bearer token
type Token struct {
	Token string `json:"token"`
}

// Message is a plain confirmation
type Message struct {
	Message string `json:"message"`
}

// ChangePassword confirms a password change and carries the new token
type ChangePassword struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Settings is the table configuration
type Settings struct {
	HorsePoints []int `json:"horsePoints"`
	ReturnPoint int   `json:"returnPoint"`
}

// SettingsFromModel converts a model.Setting
func SettingsFromModel(s *model.Setting) Settings {
	horsePoints := s.HorsePoints
	if horsePoints == nil {
		horsePoints = make([]int, model.HorsePointCount)
	}
	return Settings{
		HorsePoints: horsePoints,
		ReturnPoint: s.ReturnPoint,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
