package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
	"github.com/jportillav/playvault/internal/user"
)

func newTestStatService() (*StatService, *MockStatRepository, *MockGameRepository, *MockUserFinder, *MockLeaderboardRepository) {
	repo := &MockStatRepository{}
	games := &MockGameRepository{}
	users := &MockUserFinder{}
	lb := &MockLeaderboardRepository{}
	return NewStatService(repo, games, users, lb), repo, games, users, lb
}

func TestStatService_SeedUser_OneRowPerGame(t *testing.T) {
	service, repo, games, _, _ := newTestStatService()
	userID := uuid.New()

	games.On("GetGames").Return([]Game{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	var created []*UserGameStat
	repo.On("CreateStat", mock.AnythingOfType("*game.UserGameStat")).Run(func(args mock.Arguments) {
		created = append(created, args.Get(0).(*UserGameStat))
	}).Return(nil)

	err := service.SeedUser(userID)
	assert.NoError(t, err)
	assert.Len(t, created, 3)
	for i, stat := range created {
		assert.Equal(t, userID, stat.UserID)
		assert.Equal(t, i+1, stat.GameID)
		assert.Zero(t, stat.HighScore)
		assert.Zero(t, stat.GamesPlayed)
	}
}

func TestStatService_UpdateStat_PartialFields(t *testing.T) {
	service, repo, _, _, lb := newTestStatService()
	userID := uuid.New()

	row := &UserGameStat{UserID: userID, GameID: 1, HighScore: 500, GamesPlayed: 10}
	repo.On("GetStat", userID, 1).Return(row, nil)
	repo.On("UpdateStat", userID, 1, mock.AnythingOfType("func(*game.UserGameStat) error")).Return(row, nil)
	lb.On("RecordScore", 1, userID, 300).Return(nil)

	score := 300
	stat, err := service.UpdateStat(userID, 1, UpdateStatRequest{HighScore: &score})
	assert.NoError(t, err)
	// no monotonicity check: a lower high score overwrites a higher one
	assert.Equal(t, 300, stat.HighScore)
	assert.Equal(t, 10, stat.GamesPlayed)
	lb.AssertExpectations(t)
}

func TestStatService_UpdateStat_NoScoreNoLeaderboardWrite(t *testing.T) {
	service, repo, _, _, lb := newTestStatService()
	userID := uuid.New()

	row := &UserGameStat{UserID: userID, GameID: 1, HighScore: 500, GamesPlayed: 10}
	repo.On("GetStat", userID, 1).Return(row, nil)
	repo.On("UpdateStat", userID, 1, mock.AnythingOfType("func(*game.UserGameStat) error")).Return(row, nil)

	played := 11
	stat, err := service.UpdateStat(userID, 1, UpdateStatRequest{GamesPlayed: &played})
	assert.NoError(t, err)
	assert.Equal(t, 500, stat.HighScore)
	assert.Equal(t, 11, stat.GamesPlayed)
	lb.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatService_GetStat_LazyCreatesForNewGame(t *testing.T) {
	service, repo, games, users, _ := newTestStatService()
	userID := uuid.New()

	repo.On("GetStat", userID, 7).Return(nil, gorm.ErrRecordNotFound)
	games.On("GetGame", 7).Return(&Game{ID: 7}, nil)
	users.On("GetUser", userID).Return(&user.User{ID: userID}, nil)
	repo.On("CreateStat", mock.AnythingOfType("*game.UserGameStat")).Return(nil)

	stat, err := service.GetStat(userID, 7)
	assert.NoError(t, err)
	assert.Equal(t, userID, stat.UserID)
	assert.Equal(t, 7, stat.GameID)
	assert.Zero(t, stat.HighScore)
	repo.AssertExpectations(t)
}

func TestStatService_GetStat_UnknownGame(t *testing.T) {
	service, repo, games, _, _ := newTestStatService()
	userID := uuid.New()

	repo.On("GetStat", userID, 99).Return(nil, gorm.ErrRecordNotFound)
	games.On("GetGame", 99).Return(nil, gorm.ErrRecordNotFound)

	stat, err := service.GetStat(userID, 99)
	assert.Nil(t, stat)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
	repo.AssertNotCalled(t, "CreateStat", mock.Anything)
}

func TestStatService_CreateStat_AlreadyExists(t *testing.T) {
	service, repo, _, _, _ := newTestStatService()
	userID := uuid.New()

	repo.On("GetStat", userID, 1).Return(&UserGameStat{UserID: userID, GameID: 1}, nil)

	stat, err := service.CreateStat(userID, AddStatRequest{GameID: 1})
	assert.Nil(t, stat)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestStatService_DeleteStat_NotFound(t *testing.T) {
	service, repo, _, _, _ := newTestStatService()
	userID := uuid.New()

	repo.On("GetStat", userID, 1).Return(nil, gorm.ErrRecordNotFound)

	err := service.DeleteStat(userID, 1)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestStatService_PurgeUser(t *testing.T) {
	service, _, games, _, lb := newTestStatService()
	userID := uuid.New()

	games.On("GetGames").Return([]Game{{ID: 1}, {ID: 2}}, nil)
	lb.On("RemoveUser", []int{1, 2}, userID).Return(nil)

	err := service.PurgeUser(userID)
	assert.NoError(t, err)
	lb.AssertExpectations(t)
}
