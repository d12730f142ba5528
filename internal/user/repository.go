package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(u *User) error
	GetUser(id uuid.UUID) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUsers() ([]User, error)
	UpdateUser(u *User) error
	DeleteUser(u *User) error
	EmailTaken(email string, exclude uuid.UUID) (bool, error)
	AvatarInUse(url string) (bool, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *GormUserRepository) GetUser(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) GetUsers() ([]User, error) {
	var users []User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) UpdateUser(u *User) error {
	return r.db.Save(u).Error
}

// DeleteUser removes the row; the user's stat rows go with it through the
// ON DELETE CASCADE on user_game_stats. Achievement progress rows are left
// behind, the schema defines no referential action for them.
func (r *GormUserRepository) DeleteUser(u *User) error {
	return r.db.Delete(u).Error
}

func (r *GormUserRepository) EmailTaken(email string, exclude uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&User{}).Where("email = ?", email)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormUserRepository) AvatarInUse(url string) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where("avatar_url = ?", url).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
