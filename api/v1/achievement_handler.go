package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jportillav/playvault/internal/achievement"
)

type AchievementHandler struct {
	achievements *achievement.AchievementService
}

func NewAchievementHandler(achievements *achievement.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

func RegisterAchievementRoutes(g *echo.Group, h *AchievementHandler) {
	g.POST("", h.CreateAchievement)
	g.GET("", h.GetAchievements)
	g.GET("/:id", h.GetAchievement)
	g.PATCH("/:id", h.UpdateAchievement)
	g.DELETE("/:id", h.DeleteAchievement)
}

func (h *AchievementHandler) CreateAchievement(c echo.Context) error {
	var req achievement.AddAchievementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Name == "" || req.MaxProgress <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "name and a positive max_progress are required")
	}

	created, err := h.achievements.CreateAchievement(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AchievementHandler) GetAchievements(c echo.Context) error {
	achievements, err := h.achievements.GetAchievements()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, achievements)
}

func (h *AchievementHandler) GetAchievement(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	a, err := h.achievements.GetAchievement(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AchievementHandler) UpdateAchievement(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	var req achievement.UpdateAchievementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	a, err := h.achievements.UpdateAchievement(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AchievementHandler) DeleteAchievement(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.achievements.DeleteAchievement(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "Achievement deleted"})
}
