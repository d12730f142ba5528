package v1

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jportillav/playvault/internal/achievement"
	"github.com/jportillav/playvault/internal/game"
	"github.com/jportillav/playvault/internal/user"
)

type UserHandler struct {
	users    *user.UserService
	stats    *game.StatService
	progress *achievement.ProgressService
}

func NewUserHandler(users *user.UserService, stats *game.StatService, progress *achievement.ProgressService) *UserHandler {
	return &UserHandler{users: users, stats: stats, progress: progress}
}

// RegisterUserRoutes wires the /user family. Login and registration stay
// public; auth middleware is attached before everything else.
func RegisterUserRoutes(g *echo.Group, h *UserHandler, auth ...echo.MiddlewareFunc) {
	g.POST("/login", h.Login)
	g.POST("/add", h.Signup)

	g.Use(auth...)
	g.GET("/get", h.GetUsers)
	g.GET("/get/:id", h.GetUser)
	g.PATCH("/update/:id", h.UpdateUser)
	g.DELETE("/delete/:id", h.DeleteUser)
	g.POST("/:id/avatar", h.UploadAvatar)

	g.GET("/:id/achievements", h.ListUserAchievements)
	g.GET("/:id/achievements/:achievement_id", h.GetUserAchievement)
	g.POST("/:id/achievements", h.CreateUserAchievement)
	g.PATCH("/:id/achievements/:achievement_id", h.UpdateUserAchievement)
	g.DELETE("/:id/achievements/:achievement_id", h.DeleteUserAchievement)

	g.GET("/:id/stats", h.ListUserStats)
	g.GET("/:id/stats/:game_id", h.GetUserStat)
	g.POST("/:id/stats", h.CreateUserStat)
	g.PATCH("/:id/stats/:game_id", h.UpdateUserStat)
	g.DELETE("/:id/stats/:game_id", h.DeleteUserStat)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req user.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	token, err := h.users.Login(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, token)
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req user.AddUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	token, err := h.users.Signup(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, token)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.users.GetUsers()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	dto, err := h.users.GetUser(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req user.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	dto, err := h.users.UpdateUser(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.users.DeleteUser(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "User deleted"})
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file")
	}
	defer src.Close()

	dto, err := h.users.UploadAvatar(id, src, fileHeader.Filename)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *UserHandler) ListUserAchievements(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	list, err := h.progress.GetProgressList(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *UserHandler) GetUserAchievement(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	achievementID, err := parseIntParam(c, "achievement_id")
	if err != nil {
		return err
	}

	rec, err := h.progress.GetProgress(id, achievementID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *UserHandler) CreateUserAchievement(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req achievement.AddProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	rec, err := h.progress.CreateProgress(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *UserHandler) UpdateUserAchievement(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	achievementID, err := parseIntParam(c, "achievement_id")
	if err != nil {
		return err
	}

	var req achievement.UpdateProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	rec, err := h.progress.UpdateProgress(id, achievementID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *UserHandler) DeleteUserAchievement(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	achievementID, err := parseIntParam(c, "achievement_id")
	if err != nil {
		return err
	}

	if err := h.progress.DeleteProgress(id, achievementID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "UserAchievement deleted"})
}

func (h *UserHandler) ListUserStats(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.stats.GetStats(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) GetUserStat(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	gameID, err := parseIntParam(c, "game_id")
	if err != nil {
		return err
	}

	stat, err := h.stats.GetStat(id, gameID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

func (h *UserHandler) CreateUserStat(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req game.AddStatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	stat, err := h.stats.CreateStat(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stat)
}

func (h *UserHandler) UpdateUserStat(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	gameID, err := parseIntParam(c, "game_id")
	if err != nil {
		return err
	}

	var req game.UpdateStatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	stat, err := h.stats.UpdateStat(id, gameID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stat)
}

func (h *UserHandler) DeleteUserStat(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	gameID, err := parseIntParam(c, "game_id")
	if err != nil {
		return err
	}

	if err := h.stats.DeleteStat(id, gameID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "UserGameStat deleted"})
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}
	return id, nil
}

func parseIntParam(c echo.Context, name string) (int, error) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return value, nil
}
