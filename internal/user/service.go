package user

import (
	"errors"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
)

// Seeder creates the zeroed join rows a fresh account starts with, one per
// catalog entry known at registration time.
type Seeder interface {
	SeedUser(userID uuid.UUID) error
}

// ScorePurger drops a user's leaderboard entries when the account goes away.
type ScorePurger interface {
	PurgeUser(userID uuid.UUID) error
}

type AvatarStorage interface {
	Save(src io.Reader, ext string) (string, error)
	Remove(name string) error
}

type UserService struct {
	repo     UserRepository
	stats    Seeder
	progress Seeder
	scores   ScorePurger
	tokens   TokenIssuer
	avatars  AvatarStorage
}

func NewUserService(repo UserRepository, stats, progress Seeder, scores ScorePurger, tokens TokenIssuer, avatars AvatarStorage) *UserService {
	return &UserService{
		repo:     repo,
		stats:    stats,
		progress: progress,
		scores:   scores,
		tokens:   tokens,
		avatars:  avatars,
	}
}

// AvatarPath is the URL path an avatar file is served under.
func AvatarPath(name string) string {
	return path.Join("/media", name)
}

func (s *UserService) tokenFor(u *User) (*Token, error) {
	signed, err := s.tokens.GenerateJWT(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error creating jwt token", err)
	}
	return &Token{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        u.ToDTO(),
	}, nil
}

// Signup registers the account and seeds a stat row per game and a progress
// row per achievement currently in the catalog, then returns a token as if
// the user had logged in right away.
func (s *UserService) Signup(req AddUserRequest) (*Token, error) {
	taken, err := s.repo.EmailTaken(req.Email, uuid.Nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error checking email", err)
	}
	if taken {
		return nil, apperrors.NewAppError(400, "user with this email already exists", nil)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 14)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error hashing password", err)
	}

	newUser := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.repo.CreateUser(newUser); err != nil {
		return nil, apperrors.NewAppError(500, "error creating user", err)
	}

	if err := s.stats.SeedUser(newUser.ID); err != nil {
		return nil, apperrors.NewAppError(500, "error seeding game stats", err)
	}
	if err := s.progress.SeedUser(newUser.ID); err != nil {
		return nil, apperrors.NewAppError(500, "error seeding achievements", err)
	}

	return s.tokenFor(newUser)
}

func (s *UserService) Login(req LoginRequest) (*Token, error) {
	u, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		return nil, apperrors.NewAppError(401, "email or password is incorrect", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAppError(401, "email or password is incorrect", err)
	}

	return s.tokenFor(u)
}

func (s *UserService) GetUsers() ([]UserDTO, error) {
	users, err := s.repo.GetUsers()
	if err != nil {
		return nil, apperrors.NewAppError(500, "error listing users", err)
	}

	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	return dtos, nil
}

func (s *UserService) GetUser(id uuid.UUID) (*UserDTO, error) {
	u, err := s.getUser(id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) UpdateUser(id uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.getUser(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		taken, err := s.repo.EmailTaken(*req.Email, id)
		if err != nil {
			return nil, apperrors.NewAppError(500, "error checking email", err)
		}
		if taken {
			return nil, apperrors.NewAppError(400, "another user with this email already exists", nil)
		}
		u.Email = *req.Email
	}
	if req.Experience != nil {
		u.Experience = *req.Experience
	}

	if err := s.repo.UpdateUser(u); err != nil {
		return nil, apperrors.NewAppError(500, "error updating user", err)
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) DeleteUser(id uuid.UUID) error {
	u, err := s.getUser(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(u); err != nil {
		return apperrors.NewAppError(500, "error deleting user", err)
	}

	if err := s.scores.PurgeUser(id); err != nil {
		log.WithError(err).WithField("user", id).Warn("failed to purge leaderboard scores")
	}
	if u.AvatarURL != nil {
		if err := s.avatars.Remove(filepath.Base(*u.AvatarURL)); err != nil {
			log.WithError(err).WithField("user", id).Warn("failed to remove avatar file")
		}
	}

	return nil
}

// UploadAvatar stores the file first and commits the row after; if the row
// update fails the fresh file is removed, and the previous file is only
// deleted once the row points at the new one. A crash in between leaves an
// orphan file for the sweeper, never a dangling avatar_url.
func (s *UserService) UploadAvatar(id uuid.UUID, src io.Reader, filename string) (*UserDTO, error) {
	u, err := s.getUser(id)
	if err != nil {
		return nil, err
	}

	name, err := s.avatars.Save(src, filepath.Ext(filename))
	if err != nil {
		return nil, apperrors.NewAppError(500, "error saving avatar", err)
	}

	old := u.AvatarURL
	url := AvatarPath(name)
	u.AvatarURL = &url
	if err := s.repo.UpdateUser(u); err != nil {
		if rmErr := s.avatars.Remove(name); rmErr != nil {
			log.WithError(rmErr).Warn("failed to remove avatar after update error")
		}
		return nil, apperrors.NewAppError(500, "error updating avatar", err)
	}

	if old != nil {
		if err := s.avatars.Remove(filepath.Base(*old)); err != nil {
			log.WithError(err).WithField("file", *old).Warn("failed to remove old avatar")
		}
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) getUser(id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "user not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting user", err)
	}
	return u, nil
}
