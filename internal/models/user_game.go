package models

import (
	"time"

	"gorm.io/datatypes"
)

// GameStatus defines the tracking state of a game in a user's library.
type GameStatus string

const (
	StatusWantToPlay GameStatus = "want_to_play"
	StatusPlaying    GameStatus = "playing"
	StatusCompleted  GameStatus = "completed"
	StatusOnHold     GameStatus = "on_hold"
	StatusDropped    GameStatus = "dropped"
)

// Valid reports whether s is one of the known tracking states.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusWantToPlay, StatusPlaying, StatusCompleted, StatusOnHold, StatusDropped:
		return true
	}
	return false
}

// Platforms is the suggested platform list shown to clients. The column
// itself is free-form text.
var Platforms = []string{"PC", "PS5", "Xbox Series X", "Switch", "Android", "iOS", "Outra"}

// UserGame is a user's tracking record for a single game. At most one row
// exists per (user, game) pair; the upsert targets that unique index as its
// conflict key.
type UserGame struct {
	ID             uint            `gorm:"primaryKey"`
	UserID         uint            `gorm:"not null;uniqueIndex:idx_user_games_user_game"`
	GameID         uint            `gorm:"not null;uniqueIndex:idx_user_games_user_game"`
	Status         GameStatus      `gorm:"type:varchar(20);not null"`
	Rating         *int
	HoursPlayed    *int
	Platform       *string         `gorm:"size:100"`
	StartDate      *datatypes.Date
	CompletionDate *datatypes.Date
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Game Game `gorm:"foreignKey:GameID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (UserGame) TableName() string { return "user_games" }
