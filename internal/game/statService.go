package game

import (
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/internal/apperrors"
	"github.com/jportillav/playvault/internal/user"
)

// UserFinder is the slice of the user repository the stat service needs to
// validate row ownership before lazily creating join rows.
type UserFinder interface {
	GetUser(id uuid.UUID) (*user.User, error)
}

type StatService struct {
	repo  StatRepository
	games GameRepository
	users UserFinder
	lb    LeaderboardRepository
}

func NewStatService(repo StatRepository, games GameRepository, users UserFinder, lb LeaderboardRepository) *StatService {
	return &StatService{repo: repo, games: games, users: users, lb: lb}
}

// SeedUser creates a zeroed stat row for every game in the catalog at
// registration time. Games added afterwards are picked up lazily on first
// access instead.
func (s *StatService) SeedUser(userID uuid.UUID) error {
	games, err := s.games.GetGames()
	if err != nil {
		return err
	}

	for _, g := range games {
		stat := &UserGameStat{
			UserID: userID,
			GameID: g.ID,
		}
		if err := s.repo.CreateStat(stat); err != nil {
			return err
		}
	}
	return nil
}

func (s *StatService) GetStats(userID uuid.UUID) ([]UserGameStat, error) {
	stats, err := s.repo.GetStats(userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error listing stats", err)
	}
	return stats, nil
}

func (s *StatService) GetStat(userID uuid.UUID, gameID int) (*UserGameStat, error) {
	stat, err := s.repo.GetStat(userID, gameID)
	if err == nil {
		return stat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(500, "error getting stat", err)
	}
	return s.createMissingStat(userID, gameID)
}

func (s *StatService) CreateStat(userID uuid.UUID, req AddStatRequest) (*UserGameStat, error) {
	if _, err := s.repo.GetStat(userID, req.GameID); err == nil {
		return nil, apperrors.NewAppError(400, "stat for this game already exists", nil)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(500, "error checking stat", err)
	}

	stat := &UserGameStat{
		UserID:      userID,
		GameID:      req.GameID,
		HighScore:   req.HighScore,
		GamesPlayed: req.GamesPlayed,
	}
	if err := s.repo.CreateStat(stat); err != nil {
		return nil, apperrors.NewAppError(500, "error creating stat", err)
	}
	return stat, nil
}

// UpdateStat overwrites only the supplied fields. High scores are stored
// verbatim, a lower value replaces a higher one. A supplied high score is
// mirrored into the game's leaderboard.
func (s *StatService) UpdateStat(userID uuid.UUID, gameID int, req UpdateStatRequest) (*UserGameStat, error) {
	if _, err := s.repo.GetStat(userID, gameID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(500, "error getting stat", err)
		}
		if _, err := s.createMissingStat(userID, gameID); err != nil {
			return nil, err
		}
	}

	stat, err := s.repo.UpdateStat(userID, gameID, func(rec *UserGameStat) error {
		if req.HighScore != nil {
			rec.HighScore = *req.HighScore
		}
		if req.GamesPlayed != nil {
			rec.GamesPlayed = *req.GamesPlayed
		}
		if req.Stats != nil {
			rec.Stats = req.Stats
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "error updating stat", err)
	}

	if req.HighScore != nil {
		if err := s.lb.RecordScore(gameID, userID, stat.HighScore); err != nil {
			log.WithError(err).WithField("game", gameID).Warn("failed to record leaderboard score")
		}
	}
	return stat, nil
}

func (s *StatService) DeleteStat(userID uuid.UUID, gameID int) error {
	stat, err := s.repo.GetStat(userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAppError(404, "stat not found", err)
		}
		return apperrors.NewAppError(500, "error getting stat", err)
	}

	if err := s.repo.DeleteStat(stat); err != nil {
		return apperrors.NewAppError(500, "error deleting stat", err)
	}
	return nil
}

// PurgeUser drops the user's leaderboard entries; the stat rows themselves
// are removed by the database cascade on user deletion.
func (s *StatService) PurgeUser(userID uuid.UUID) error {
	games, err := s.games.GetGames()
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	return s.lb.RemoveUser(ids, userID)
}

// createMissingStat backfills the join row for a game that entered the
// catalog after the user registered.
func (s *StatService) createMissingStat(userID uuid.UUID, gameID int) (*UserGameStat, error) {
	if _, err := s.games.GetGame(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "stat not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting game", err)
	}
	if _, err := s.users.GetUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(404, "user not found", err)
		}
		return nil, apperrors.NewAppError(500, "error getting user", err)
	}

	stat := &UserGameStat{UserID: userID, GameID: gameID}
	if err := s.repo.CreateStat(stat); err != nil {
		return nil, apperrors.NewAppError(500, "error creating stat", err)
	}
	return stat, nil
}
