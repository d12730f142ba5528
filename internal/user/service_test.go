package user

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
)

func newTestUserService() (*UserService, *MockUserRepository, *MockSeeder, *MockSeeder, *MockScorePurger, *MockTokenIssuer, *MockAvatarStorage) {
	repo := &MockUserRepository{}
	stats := &MockSeeder{}
	progress := &MockSeeder{}
	scores := &MockScorePurger{}
	tokens := &MockTokenIssuer{}
	avatars := &MockAvatarStorage{}
	service := NewUserService(repo, stats, progress, scores, tokens, avatars)
	return service, repo, stats, progress, scores, tokens, avatars
}

func TestUserService_Signup(t *testing.T) {
	service, repo, stats, progress, _, tokens, _ := newTestUserService()

	repo.On("EmailTaken", "alice@example.com", uuid.Nil).Return(false, nil)
	repo.On("CreateUser", mock.AnythingOfType("*user.User")).Run(func(args mock.Arguments) {
		u := args.Get(0).(*User)
		u.ID = uuid.New()
		u.Experience = 1000
	}).Return(nil)
	stats.On("SeedUser", mock.AnythingOfType("uuid.UUID")).Return(nil)
	progress.On("SeedUser", mock.AnythingOfType("uuid.UUID")).Return(nil)
	tokens.On("GenerateJWT", mock.AnythingOfType("uuid.UUID"), "alice@example.com").Return("token123", nil)

	token, err := service.Signup(AddUserRequest{Name: "alice", Email: "alice@example.com", Password: "secret"})
	assert.NoError(t, err)
	assert.Equal(t, "token123", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, "alice", token.User.Name)
	assert.Equal(t, 1000, token.User.Experience)
	assert.Nil(t, token.User.AvatarURL)
	repo.AssertExpectations(t)
	stats.AssertExpectations(t)
	progress.AssertExpectations(t)
}

func TestUserService_Signup_HashesPassword(t *testing.T) {
	service, repo, stats, progress, _, tokens, _ := newTestUserService()

	var stored string
	repo.On("EmailTaken", "bob@example.com", uuid.Nil).Return(false, nil)
	repo.On("CreateUser", mock.AnythingOfType("*user.User")).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*User).Password
	}).Return(nil)
	stats.On("SeedUser", mock.Anything).Return(nil)
	progress.On("SeedUser", mock.Anything).Return(nil)
	tokens.On("GenerateJWT", mock.Anything, "bob@example.com").Return("tok", nil)

	_, err := service.Signup(AddUserRequest{Name: "bob", Email: "bob@example.com", Password: "hunter2"})
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", stored)
	assert.True(t, strings.HasPrefix(stored, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("hunter2")))
}

func TestUserService_Signup_EmailConflict(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()

	repo.On("EmailTaken", "dup@example.com", uuid.Nil).Return(true, nil)

	token, err := service.Signup(AddUserRequest{Name: "dup", Email: "dup@example.com", Password: "x"})
	assert.Nil(t, token)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	service, repo, _, _, _, tokens, _ := newTestUserService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	u := &User{ID: uuid.New(), Name: "alice", Email: "alice@example.com", Password: string(hashed)}
	repo.On("GetUserByEmail", "alice@example.com").Return(u, nil)
	tokens.On("GenerateJWT", u.ID, u.Email).Return("tok456", nil)

	token, err := service.Login(LoginRequest{Email: "alice@example.com", Password: "secret"})
	assert.NoError(t, err)
	assert.Equal(t, "tok456", token.AccessToken)
	assert.Equal(t, u.ID, token.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	u := &User{ID: uuid.New(), Email: "alice@example.com", Password: string(hashed)}
	repo.On("GetUserByEmail", "alice@example.com").Return(u, nil)

	token, err := service.Login(LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Nil(t, token)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 401, appErr.Code)
}

func TestUserService_Login_TwiceIssuesIndependentTokens(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()
	service.tokens = NewJWTIssuer("test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	u := &User{ID: uuid.New(), Email: "alice@example.com", Password: string(hashed)}
	repo.On("GetUserByEmail", "alice@example.com").Return(u, nil)

	first, err := service.Login(LoginRequest{Email: "alice@example.com", Password: "secret"})
	assert.NoError(t, err)
	second, err := service.Login(LoginRequest{Email: "alice@example.com", Password: "secret"})
	assert.NoError(t, err)

	assert.NotEmpty(t, first.AccessToken)
	assert.NotEmpty(t, second.AccessToken)
	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()

	id := uuid.New()
	repo.On("GetUser", id).Return(nil, gorm.ErrRecordNotFound)

	dto, err := service.GetUser(id)
	assert.Nil(t, dto)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()

	id := uuid.New()
	u := &User{ID: id, Name: "old", Email: "old@example.com", Experience: 1000}
	repo.On("GetUser", id).Return(u, nil)
	repo.On("UpdateUser", u).Return(nil)

	name := "new"
	dto, err := service.UpdateUser(id, UpdateUserRequest{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "new", dto.Name)
	assert.Equal(t, "old@example.com", dto.Email)
	assert.Equal(t, 1000, dto.Experience)
}

func TestUserService_UpdateUser_EmailConflict(t *testing.T) {
	service, repo, _, _, _, _, _ := newTestUserService()

	id := uuid.New()
	u := &User{ID: id, Email: "old@example.com"}
	repo.On("GetUser", id).Return(u, nil)
	repo.On("EmailTaken", "taken@example.com", id).Return(true, nil)

	email := "taken@example.com"
	dto, err := service.UpdateUser(id, UpdateUserRequest{Email: &email})
	assert.Nil(t, dto)
	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything)
}

func TestUserService_DeleteUser(t *testing.T) {
	service, repo, _, _, scores, _, _ := newTestUserService()

	id := uuid.New()
	u := &User{ID: id, Email: "gone@example.com"}
	repo.On("GetUser", id).Return(u, nil)
	repo.On("DeleteUser", u).Return(nil)
	scores.On("PurgeUser", id).Return(nil)

	err := service.DeleteUser(id)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
	scores.AssertExpectations(t)
}

func TestUserService_UploadAvatar_ReplacesOldFile(t *testing.T) {
	service, repo, _, _, _, _, avatars := newTestUserService()

	id := uuid.New()
	old := AvatarPath("avatar-old.png")
	u := &User{ID: id, AvatarURL: &old}
	repo.On("GetUser", id).Return(u, nil)
	avatars.On("Save", mock.Anything, ".png").Return("avatar-new.png", nil)
	repo.On("UpdateUser", u).Return(nil)
	avatars.On("Remove", "avatar-old.png").Return(nil)

	dto, err := service.UploadAvatar(id, strings.NewReader("img"), "me.png")
	assert.NoError(t, err)
	assert.Equal(t, AvatarPath("avatar-new.png"), *dto.AvatarURL)
	avatars.AssertExpectations(t)
}

func TestUserService_UploadAvatar_RowUpdateFailureRemovesNewFile(t *testing.T) {
	service, repo, _, _, _, _, avatars := newTestUserService()

	id := uuid.New()
	u := &User{ID: id}
	repo.On("GetUser", id).Return(u, nil)
	avatars.On("Save", mock.Anything, ".png").Return("avatar-new.png", nil)
	repo.On("UpdateUser", u).Return(errors.New("db down"))
	avatars.On("Remove", "avatar-new.png").Return(nil)

	dto, err := service.UploadAvatar(id, strings.NewReader("img"), "me.png")
	assert.Nil(t, dto)
	assert.Error(t, err)
	avatars.AssertExpectations(t)
}
