package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	api_middleware "github.com/jportillav/playvault/api/middleware"
	v1 "github.com/jportillav/playvault/api/v1"
	"github.com/jportillav/playvault/internal/achievement"
	"github.com/jportillav/playvault/internal/apperrors"
	"github.com/jportillav/playvault/internal/game"
	"github.com/jportillav/playvault/internal/user"
	"github.com/jportillav/playvault/pkg/config"
	"github.com/jportillav/playvault/pkg/db"
	"github.com/jportillav/playvault/pkg/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("File .env not found, using system values")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	if err := conn.AutoMigrate(
		&user.User{},
		&game.Game{},
		&achievement.Achievement{},
		&game.UserGameStat{},
		&achievement.UserAchievement{},
	); err != nil {
		log.Fatalf("error migrating schema: %v", err)
	}

	rdb, err := db.ConnectRedis(context.Background(), cfg)
	if err != nil {
		log.Fatalf("error connecting to redis: %v", err)
	}

	avatars, err := storage.NewAvatarStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("error preparing media directory: %v", err)
	}

	userRepo := user.NewGormUserRepository(conn)
	gameRepo := game.NewGormGameRepository(conn)
	statRepo := game.NewGormStatRepository(conn)
	achievementRepo := achievement.NewGormAchievementRepository(conn)
	progressRepo := achievement.NewGormProgressRepository(conn)
	leaderboard := game.NewRedisLeaderboardRepository(rdb)

	gameService := game.NewGameService(gameRepo, leaderboard)
	statService := game.NewStatService(statRepo, gameRepo, userRepo, leaderboard)
	achievementService := achievement.NewAchievementService(achievementRepo)
	progressService := achievement.NewProgressService(progressRepo, achievementRepo, userRepo)
	tokens := user.NewJWTIssuer(cfg.JWTSecret)
	userService := user.NewUserService(userRepo, statService, progressService, statService, tokens, avatars)

	if err := avatars.StartSweeper(func(name string) (bool, error) {
		return userRepo.AvatarInUse(user.AvatarPath(name))
	}); err != nil {
		log.Fatalf("error starting avatar sweeper: %v", err)
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.HTTPErrorHandler = appErrorHandler(e)

	e.Static("/media", cfg.MediaDir)

	auth := []echo.MiddlewareFunc{
		api_middleware.SetupJWTMiddleware(cfg.JWTSecret),
		api_middleware.CurrentUser(userRepo),
	}

	api := e.Group("/api")
	v1.RegisterUserRoutes(api.Group("/user"), v1.NewUserHandler(userService, statService, progressService), auth...)

	g := api.Group("/game")
	g.Use(auth...)
	v1.RegisterGameRoutes(g, v1.NewGameHandler(gameService))

	a := api.Group("/achievement")
	a.Use(auth...)
	v1.RegisterAchievementRoutes(a, v1.NewAchievementHandler(achievementService))

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// appErrorHandler maps service-level AppErrors to their HTTP status before
// falling back to echo's default handling.
func appErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if !c.Response().Committed {
				if jsonErr := c.JSON(appErr.Code, echo.Map{"detail": appErr.Message}); jsonErr != nil {
					log.WithError(jsonErr).Error("error writing error response")
				}
			}
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
