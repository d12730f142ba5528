package achievement

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
)

type AchievementService struct {
	repo AchievementRepository
}

func NewAchievementService(repo AchievementRepository) *AchievementService {
	return &AchievementService{repo: repo}
}

func (s *AchievementService) CreateAchievement(req AddAchievementRequest) (*Achievement, error) {
	a := &Achievement{
		Name:        req.Name,
		Description: req.Description,
		MaxProgress: req.MaxProgress,
	}
	if err := s.repo.CreateAchievement(a); err != nil {
		return nil, apperrors.NewAppError(500, "error creating achievement", err)
	}
	return a, nil
}

func (s *AchievementService) GetAchievements() ([]Achievement, error) {
	achievements, err := s.repo.GetAchievements()
	if err != nil {
		return nil, apperrors.NewAppError(500, "error listing achievements", err)
	}
	return achievements, nil
}

func (s *AchievementService) GetAchievement(id int) (*Achievement, error) {
	a, err := s.repo.GetAchievement(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "achievement not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting achievement", err)
	}
	return a, nil
}

func (s *AchievementService) UpdateAchievement(id int, req UpdateAchievementRequest) (*Achievement, error) {
	a, err := s.GetAchievement(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.MaxProgress != nil {
		a.MaxProgress = *req.MaxProgress
	}

	if err := s.repo.UpdateAchievement(a); err != nil {
		return nil, apperrors.NewAppError(500, "error updating achievement", err)
	}
	return a, nil
}

// DeleteAchievement removes the catalog entry only; per-user progress rows
// referencing it stay in place.
func (s *AchievementService) DeleteAchievement(id int) error {
	a, err := s.GetAchievement(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteAchievement(a); err != nil {
		return apperrors.NewAppError(500, "error deleting achievement", err)
	}
	return nil
}
