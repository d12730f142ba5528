package game

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
)

type GameService struct {
	repo GameRepository
	lb   LeaderboardRepository
}

func NewGameService(repo GameRepository, lb LeaderboardRepository) *GameService {
	return &GameService{repo: repo, lb: lb}
}

func (s *GameService) CreateGame(req AddGameRequest) (*Game, error) {
	taken, err := s.repo.CodeTaken(req.Code, 0)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error checking game code", err)
	}
	if taken {
		return nil, apperrors.NewAppError(400, "game with this code already exists", nil)
	}

	g := &Game{Code: req.Code, Name: req.Name}
	if err := s.repo.CreateGame(g); err != nil {
		return nil, apperrors.NewAppError(500, "error creating game", err)
	}
	return g, nil
}

func (s *GameService) GetGames() ([]Game, error) {
	games, err := s.repo.GetGames()
	if err != nil {
		return nil, apperrors.NewAppError(500, "error listing games", err)
	}
	return games, nil
}

func (s *GameService) GetGame(id int) (*Game, error) {
	g, err := s.repo.GetGame(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "game not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting game", err)
	}
	return g, nil
}

func (s *GameService) UpdateGame(id int, req UpdateGameRequest) (*Game, error) {
	g, err := s.GetGame(id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		taken, err := s.repo.CodeTaken(*req.Code, id)
		if err != nil {
			return nil, apperrors.NewAppError(500, "error checking game code", err)
		}
		if taken {
			return nil, apperrors.NewAppError(400, "another game with this code already exists", nil)
		}
		g.Code = *req.Code
	}
	if req.Name != nil {
		g.Name = *req.Name
	}

	if err := s.repo.UpdateGame(g); err != nil {
		return nil, apperrors.NewAppError(500, "error updating game", err)
	}
	return g, nil
}

// DeleteGame removes the catalog entry; referencing stat rows go with it
// through the cascade, and the game's leaderboard key is dropped.
func (s *GameService) DeleteGame(id int) error {
	g, err := s.GetGame(id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteGame(g); err != nil {
		return apperrors.NewAppError(500, "error deleting game", err)
	}

	if err := s.lb.RemoveGame(id); err != nil {
		log.WithError(err).WithField("game", id).Warn("failed to drop leaderboard")
	}
	return nil
}

func (s *GameService) GetLeaderboard(id, limit int) ([]LeaderboardEntry, error) {
	if _, err := s.GetGame(id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	entries, err := s.lb.TopScores(id, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error reading leaderboard", err)
	}
	return entries, nil
}
