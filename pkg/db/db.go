package db

import (
	"context"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jportillav/playvault/pkg/config"
)

// Connect opens the postgres connection. The handle is returned to the
// caller instead of being kept in a package global so that repositories
// receive it through their constructors.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.WithField("host", cfg.Database.Host).Info("postgres connected")
	return conn, nil
}

func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.WithField("pong", pong).Info("redis connected")
	return rdb, nil
}
