package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// LeaderboardRepository mirrors reported high scores into a per-game
// ranking. It is a projection of user_game_stats, postgres stays the
// source of truth.
type LeaderboardRepository interface {
	RecordScore(gameID int, userID uuid.UUID, score int) error
	TopScores(gameID int, limit int) ([]LeaderboardEntry, error)
	RemoveUser(gameIDs []int, userID uuid.UUID) error
	RemoveGame(gameID int) error
}

type RedisLeaderboardRepository struct {
	db *redis.Client
}

func NewRedisLeaderboardRepository(db *redis.Client) *RedisLeaderboardRepository {
	return &RedisLeaderboardRepository{db: db}
}

func leaderboardKey(gameID int) string {
	return fmt.Sprintf("leaderboard:%d", gameID)
}

func (r *RedisLeaderboardRepository) RecordScore(gameID int, userID uuid.UUID, score int) error {
	member := redis.Z{Score: float64(score), Member: userID.String()}
	return r.db.ZAdd(ctx, leaderboardKey(gameID), member).Err()
}

func (r *RedisLeaderboardRepository) TopScores(gameID int, limit int) ([]LeaderboardEntry, error) {
	results, err := r.db.ZRevRangeWithScores(ctx, leaderboardKey(gameID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		id, err := uuid.Parse(fmt.Sprint(z.Member))
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			UserID:    id,
			HighScore: int(z.Score),
			Rank:      i + 1,
		})
	}
	return entries, nil
}

func (r *RedisLeaderboardRepository) RemoveUser(gameIDs []int, userID uuid.UUID) error {
	for _, gameID := range gameIDs {
		if err := r.db.ZRem(ctx, leaderboardKey(gameID), userID.String()).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisLeaderboardRepository) RemoveGame(gameID int) error {
	return r.db.Del(ctx, leaderboardKey(gameID)).Err()
}
