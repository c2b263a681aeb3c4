package mongo

import (
	"time"

	"github.com/mcoot/mahjong-scoreboard/internal/model"
)

// Collection names
const (
	playersCollection  = "players"
	adminsCollection   = "admins"
	settingsCollection = "settings"
)

// Fixed document ids of the singletons
const (
	adminDocumentID   = "admin"
	settingDocumentID = "settings"
)

type playerDocument struct {
	Name      string    `bson:"name"`
	Score     int       `bson:"score"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d *playerDocument) toModel() *model.Player {
	return &model.Player{
		Name:      d.Name,
		Score:     d.Score,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type adminDocument struct {
	ID            string    `bson:"_id"`
	AdminID       string    `bson:"adminId"`
	Password      string    `bson:"password"`
	IsInitialized bool      `bson:"isInitialized"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

func adminDocumentFromModel(a *model.Admin) adminDocument {
	return adminDocument{
		ID:            adminDocumentID,
		AdminID:       a.ID,
		Password:      a.PasswordHash,
		IsInitialized: a.IsInitialized,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (d *adminDocument) toModel() *model.Admin {
	return &model.Admin{
		ID:            d.AdminID,
		PasswordHash:  d.Password,
		IsInitialized: d.IsInitialized,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type settingDocument struct {
	ID          string    `bson:"_id"`
	HorsePoints []int     `bson:"horsePoints"`
	ReturnPoint int       `bson:"returnPoint"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d *settingDocument) toModel() *model.Setting {
	return &model.Setting{
		HorsePoints: d.HorsePoints,
		ReturnPoint: d.ReturnPoint,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
