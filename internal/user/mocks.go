package user

import (
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(u *User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(id uuid.UUID) (*User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*User, error) {
	args := m.Called(email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUsers() ([]User, error) {
	args := m.Called()
	if u := args.Get(0); u != nil {
		return u.([]User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(u *User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(u *User) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockUserRepository) EmailTaken(email string, exclude uuid.UUID) (bool, error) {
	args := m.Called(email, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AvatarInUse(url string) (bool, error) {
	args := m.Called(url)
	return args.Bool(0), args.Error(1)
}

type MockSeeder struct {
	mock.Mock
}

func (m *MockSeeder) SeedUser(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockScorePurger struct {
	mock.Mock
}

func (m *MockScorePurger) PurgeUser(userID uuid.UUID) error {
	args := m.Called(userID)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) GenerateJWT(id uuid.UUID, email string) (string, error) {
	args := m.Called(id, email)
	return args.String(0), args.Error(1)
}

type MockAvatarStorage struct {
	mock.Mock
}

func (m *MockAvatarStorage) Save(src io.Reader, ext string) (string, error) {
	args := m.Called(src, ext)
	return args.String(0), args.Error(1)
}

func (m *MockAvatarStorage) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}
