package game

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/jportillav/playvault/internal/user"
)

type Game struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`
}

// UserGameStat is keyed by (user, game); deleting either side removes the
// row through the ON DELETE CASCADE constraints.
type UserGameStat struct {
	UserID      uuid.UUID         `gorm:"type:uuid;primaryKey" json:"user_id"`
	GameID      int               `gorm:"primaryKey" json:"game_id"`
	HighScore   int               `gorm:"not null;default:0" json:"high_score"`
	GamesPlayed int               `gorm:"not null;default:0" json:"games_played"`
	Stats       datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"stats"`

	User user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Game Game      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type AddGameRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type UpdateGameRequest struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

type AddStatRequest struct {
	GameID      int `json:"game_id"`
	HighScore   int `json:"high_score"`
	GamesPlayed int `json:"games_played"`
}

type UpdateStatRequest struct {
	HighScore   *int              `json:"high_score"`
	GamesPlayed *int              `json:"games_played"`
	Stats       datatypes.JSONMap `json:"stats"`
}

type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	HighScore int       `json:"high_score"`
	Rank      int       `json:"rank"`
}
