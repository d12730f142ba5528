package game

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jportillav/playvault/internal/user"
)

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) CreateGame(g *Game) error {
	args := m.Called(g)
	return args.Error(0)
}

func (m *MockGameRepository) GetGame(id int) (*Game, error) {
	args := m.Called(id)
	if g := args.Get(0); g != nil {
		return g.(*Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGameRepository) GetGames() ([]Game, error) {
	args := m.Called()
	if g := args.Get(0); g != nil {
		return g.([]Game), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGameRepository) UpdateGame(g *Game) error {
	args := m.Called(g)
	return args.Error(0)
}

func (m *MockGameRepository) DeleteGame(g *Game) error {
	args := m.Called(g)
	return args.Error(0)
}

func (m *MockGameRepository) CodeTaken(code string, exclude int) (bool, error) {
	args := m.Called(code, exclude)
	return args.Bool(0), args.Error(1)
}

type MockStatRepository struct {
	mock.Mock
}

func (m *MockStatRepository) CreateStat(s *UserGameStat) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockStatRepository) GetStat(userID uuid.UUID, gameID int) (*UserGameStat, error) {
	args := m.Called(userID, gameID)
	if s := args.Get(0); s != nil {
		return s.(*UserGameStat), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatRepository) GetStats(userID uuid.UUID) ([]UserGameStat, error) {
	args := m.Called(userID)
	if s := args.Get(0); s != nil {
		return s.([]UserGameStat), args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateStat runs the apply function against the row configured with the
// "row" return value, mimicking the locked read-modify-write.
func (m *MockStatRepository) UpdateStat(userID uuid.UUID, gameID int, apply func(*UserGameStat) error) (*UserGameStat, error) {
	args := m.Called(userID, gameID, apply)
	if s := args.Get(0); s != nil {
		rec := s.(*UserGameStat)
		if err := apply(rec); err != nil {
			return nil, err
		}
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStatRepository) DeleteStat(s *UserGameStat) error {
	args := m.Called(s)
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

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) RecordScore(gameID int, userID uuid.UUID, score int) error {
	args := m.Called(gameID, userID, score)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) TopScores(gameID int, limit int) ([]LeaderboardEntry, error) {
	args := m.Called(gameID, limit)
	if e := args.Get(0); e != nil {
		return e.([]LeaderboardEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeaderboardRepository) RemoveUser(gameIDs []int, userID uuid.UUID) error {
	args := m.Called(gameIDs, userID)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) RemoveGame(gameID int) error {
	args := m.Called(gameID)
	return args.Error(0)
}
