package game

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameRepository interface {
	CreateGame(g *Game) error
	GetGame(id int) (*Game, error)
	GetGames() ([]Game, error)
	UpdateGame(g *Game) error
	DeleteGame(g *Game) error
	CodeTaken(code string, exclude int) (bool, error)
}

type StatRepository interface {
	CreateStat(s *UserGameStat) error
	GetStat(userID uuid.UUID, gameID int) (*UserGameStat, error)
	GetStats(userID uuid.UUID) ([]UserGameStat, error)
	UpdateStat(userID uuid.UUID, gameID int, apply func(*UserGameStat) error) (*UserGameStat, error)
	DeleteStat(s *UserGameStat) error
}

type GormGameRepository struct {
	db *gorm.DB
}

func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

func (r *GormGameRepository) CreateGame(g *Game) error {
	return r.db.Create(g).Error
}

func (r *GormGameRepository) GetGame(id int) (*Game, error) {
	var g Game
	if err := r.db.Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GormGameRepository) GetGames() ([]Game, error) {
	var games []Game
	if err := r.db.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *GormGameRepository) UpdateGame(g *Game) error {
	return r.db.Save(g).Error
}

func (r *GormGameRepository) DeleteGame(g *Game) error {
	return r.db.Delete(g).Error
}

func (r *GormGameRepository) CodeTaken(code string, exclude int) (bool, error) {
	var count int64
	q := r.db.Model(&Game{}).Where("code = ?", code)
	if exclude != 0 {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type GormStatRepository struct {
	db *gorm.DB
}

func NewGormStatRepository(db *gorm.DB) *GormStatRepository {
	return &GormStatRepository{db: db}
}

func (r *GormStatRepository) CreateStat(s *UserGameStat) error {
	return r.db.Omit(clause.Associations).Create(s).Error
}

func (r *GormStatRepository) GetStat(userID uuid.UUID, gameID int) (*UserGameStat, error) {
	var s UserGameStat
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormStatRepository) GetStats(userID uuid.UUID) ([]UserGameStat, error) {
	var stats []UserGameStat
	if err := r.db.Where("user_id = ?", userID).Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// UpdateStat runs the read-modify-write under SELECT FOR UPDATE so two
// concurrent partial updates to the same row cannot interleave.
func (r *GormStatRepository) UpdateStat(userID uuid.UUID, gameID int, apply func(*UserGameStat) error) (*UserGameStat, error) {
	var s UserGameStat
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND game_id = ?", userID, gameID).
			First(&s).Error; err != nil {
			return err
		}
		if err := apply(&s); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&s).Error
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormStatRepository) DeleteStat(s *UserGameStat) error {
	return r.db.Delete(s).Error
}
