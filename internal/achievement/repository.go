package achievement

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	CreateAchievement(a *Achievement) error
	GetAchievement(id int) (*Achievement, error)
	GetAchievements() ([]Achievement, error)
	UpdateAchievement(a *Achievement) error
	DeleteAchievement(a *Achievement) error
}

type ProgressRepository interface {
	CreateProgress(p *UserAchievement) error
	GetProgress(userID uuid.UUID, achievementID int) (*UserAchievement, error)
	GetProgressList(userID uuid.UUID) ([]UserAchievement, error)
	UpdateProgress(userID uuid.UUID, achievementID int, apply func(*UserAchievement) error) (*UserAchievement, error)
	DeleteProgress(p *UserAchievement) error
}

type GormAchievementRepository struct {
	db *gorm.DB
}

func NewGormAchievementRepository(db *gorm.DB) *GormAchievementRepository {
	return &GormAchievementRepository{db: db}
}

func (r *GormAchievementRepository) CreateAchievement(a *Achievement) error {
	return r.db.Create(a).Error
}

func (r *GormAchievementRepository) GetAchievement(id int) (*Achievement, error) {
	var a Achievement
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAchievementRepository) GetAchievements() ([]Achievement, error) {
	var achievements []Achievement
	if err := r.db.Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *GormAchievementRepository) UpdateAchievement(a *Achievement) error {
	return r.db.Save(a).Error
}

func (r *GormAchievementRepository) DeleteAchievement(a *Achievement) error {
	return r.db.Delete(a).Error
}

type GormProgressRepository struct {
	db *gorm.DB
}

func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

func (r *GormProgressRepository) CreateProgress(p *UserAchievement) error {
	return r.db.Create(p).Error
}

func (r *GormProgressRepository) GetProgress(userID uuid.UUID, achievementID int) (*UserAchievement, error) {
	var p UserAchievement
	err := r.db.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProgressRepository) GetProgressList(userID uuid.UUID) ([]UserAchievement, error) {
	var list []UserAchievement
	if err := r.db.Where("user_id = ?", userID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateProgress locks the row for the duration of the read-modify-write so
// concurrent partial updates serialize instead of clobbering each other.
func (r *GormProgressRepository) UpdateProgress(userID uuid.UUID, achievementID int, apply func(*UserAchievement) error) (*UserAchievement, error) {
	var p UserAchievement
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND achievement_id = ?", userID, achievementID).
			First(&p).Error; err != nil {
			return err
		}
		if err := apply(&p); err != nil {
			return err
		}
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProgressRepository) DeleteProgress(p *UserAchievement) error {
	return r.db.Delete(p).Error
}
