package achievement

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
	"github.com/jportillav/playvault/internal/user"
)

type UserFinder interface {
	GetUser(id uuid.UUID) (*user.User, error)
}

type ProgressService struct {
	repo    ProgressRepository
	catalog AchievementRepository
	users   UserFinder
}

func NewProgressService(repo ProgressRepository, catalog AchievementRepository, users UserFinder) *ProgressService {
	return &ProgressService{repo: repo, catalog: catalog, users: users}
}

// SeedUser creates a zero-progress row for every achievement in the catalog
// at registration time. Achievements added afterwards are picked up lazily
// on first access.
func (s *ProgressService) SeedUser(userID uuid.UUID) error {
	achievements, err := s.catalog.GetAchievements()
	if err != nil {
		return err
	}

	for _, a := range achievements {
		rec := &UserAchievement{
			UserID:        userID,
			AchievementID: a.ID,
		}
		if err := s.repo.CreateProgress(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProgressService) GetProgressList(userID uuid.UUID) ([]UserAchievement, error) {
	list, err := s.repo.GetProgressList(userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error listing user achievements", err)
	}
	return list, nil
}

func (s *ProgressService) GetProgress(userID uuid.UUID, achievementID int) (*UserAchievement, error) {
	rec, err := s.repo.GetProgress(userID, achievementID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(500, "error getting user achievement", err)
	}
	return s.createMissingProgress(userID, achievementID)
}

func (s *ProgressService) CreateProgress(userID uuid.UUID, req AddProgressRequest) (*UserAchievement, error) {
	if _, err := s.repo.GetProgress(userID, req.AchievementID); err == nil {
		return nil, apperrors.NewAppError(400, "user achievement already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(500, "error checking user achievement", err)
	}

	rec := &UserAchievement{
		UserID:        userID,
		AchievementID: req.AchievementID,
		Achieved:      req.Achieved,
		Progress:      req.Progress,
	}
	if err := s.repo.CreateProgress(rec); err != nil {
		return nil, apperrors.NewAppError(500, "error creating user achievement", err)
	}
	return rec, nil
}

// UpdateProgress applies the progress rule: a supplied progress value is
// clamped to the achievement's max_progress, and reaching the max flips
// achieved on. An explicitly supplied achieved value is applied afterwards
// and wins over whatever the clamp computed, so a caller can force-achieve
// or un-achieve independent of progress.
func (s *ProgressService) UpdateProgress(userID uuid.UUID, achievementID int, req UpdateProgressRequest) (*UserAchievement, error) {
	var target *Achievement
	if req.Progress != nil {
		a, err := s.catalog.GetAchievement(achievementID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewAppError(404, "achievement not found", err)
			}
			return nil, apperrors.NewAppError(500, "error getting achievement", err)
		}
		target = a
	}

	if _, err := s.repo.GetProgress(userID, achievementID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(500, "error getting user achievement", err)
		}
		if _, err := s.createMissingProgress(userID, achievementID); err != nil {
			return nil, err
		}
	}

	rec, err := s.repo.UpdateProgress(userID, achievementID, func(p *UserAchievement) error {
		if req.Progress != nil {
			if *req.Progress >= target.MaxProgress {
				p.Progress = target.MaxProgress
				p.Achieved = true
			} else {
				p.Progress = *req.Progress
			}
		}
		if req.Achieved != nil {
			p.Achieved = *req.Achieved
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "error updating user achievement", err)
	}
	return rec, nil
}

func (s *ProgressService) DeleteProgress(userID uuid.UUID, achievementID int) error {
	rec, err := s.repo.GetProgress(userID, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(404, "user achievement not found", err)
		}
		return apperrors.NewAppError(500, "error getting user achievement", err)
	}

	if err := s.repo.DeleteProgress(rec); err != nil {
		return apperrors.NewAppError(500, "error deleting user achievement", err)
	}
	return nil
}

// createMissingProgress backfills the join row for an achievement that
// entered the catalog after the user registered.
func (s *ProgressService) createMissingProgress(userID uuid.UUID, achievementID int) (*UserAchievement, error) {
	if _, err := s.catalog.GetAchievement(achievementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "achievement not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting achievement", err)
	}
	if _, err := s.users.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "user not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting user", err)
	}

	rec := &UserAchievement{UserID: userID, AchievementID: achievementID}
	if err := s.repo.CreateProgress(rec); err != nil {
		return nil, apperrors.NewAppError(500, "error creating user achievement", err)
	}
	return rec, nil
}
