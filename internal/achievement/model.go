package achievement

import "github.com/google/uuid"

type Achievement struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255;not null" json:"description"`
	MaxProgress int    `gorm:"not null" json:"max_progress"`
}

// UserAchievement carries no foreign key constraints: deleting a user or an
// achievement leaves its rows behind. That is the schema's contract, the
// dangling rows are accepted.
type UserAchievement struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	AchievementID int       `gorm:"primaryKey" json:"achievement_id"`
	Achieved      bool      `gorm:"not null;default:false" json:"achieved"`
	Progress      int       `gorm:"not null;default:0" json:"progress"`
}

type AddAchievementRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxProgress int    `json:"max_progress"`
}

type UpdateAchievementRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxProgress *int    `json:"max_progress"`
}

type AddProgressRequest struct {
	AchievementID int  `json:"achievement_id"`
	Achieved      bool `json:"achieved"`
	Progress      int  `json:"progress"`
}

type UpdateProgressRequest struct {
	Achieved *bool `json:"achieved"`
	Progress *int  `json:"progress"`
}
