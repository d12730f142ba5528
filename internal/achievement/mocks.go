package achievement

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jportillav/playvault/internal/user"
)

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) CreateAchievement(a *Achievement) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAchievementRepository) GetAchievement(id int) (*Achievement, error) {
	args := m.Called(id)
	if a := args.Get(0); a != nil {
		return a.(*Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAchievementRepository) GetAchievements() ([]Achievement, error) {
	args := m.Called()
	if a := args.Get(0); a != nil {
		return a.([]Achievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAchievementRepository) UpdateAchievement(a *Achievement) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockAchievementRepository) DeleteAchievement(a *Achievement) error {
	args := m.Called(a)
	return args.Error(0)
}

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) CreateProgress(p *UserAchievement) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProgressRepository) GetProgress(userID uuid.UUID, achievementID int) (*UserAchievement, error) {
	args := m.Called(userID, achievementID)
	if p := args.Get(0); p != nil {
		return p.(*UserAchievement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepository) GetProgressList(userID uuid.UUID) ([]UserAchievement, error) {
	args := m.Called(userID)
	if p := args.Get(0); p != nil {
		return p.([]UserAchievement), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateProgress applies the given function to the configured row,
// mimicking the locked read-modify-write.
func (m *MockProgressRepository) UpdateProgress(userID uuid.UUID, achievementID int, apply func(*UserAchievement) error) (*UserAchievement, error) {
	args := m.Called(userID, achievementID, apply)
	if p := args.Get(0); p != nil {
		rec := p.(*UserAchievement)
		if err := apply(rec); err != nil {
			return nil, err
		}
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressRepository) DeleteProgress(p *UserAchievement) error {
	args := m.Called(p)
	return args.Error(0)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetUser(id uuid.UUID) (*user.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}
