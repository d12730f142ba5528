package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jportillav/playvault/internal/game"
)

type GameHandler struct {
	games *game.GameService
}

func NewGameHandler(games *game.GameService) *GameHandler {
	return &GameHandler{games: games}
}

func RegisterGameRoutes(g *echo.Group, h *GameHandler) {
	g.POST("/add", h.CreateGame)
	g.GET("", h.GetGames)
	g.GET("/:id", h.GetGame)
	g.PATCH("/:id", h.UpdateGame)
	g.DELETE("/:id", h.DeleteGame)
	g.GET("/:id/leaderboard", h.GetLeaderboard)
}

func (h *GameHandler) CreateGame(c echo.Context) error {
	var req game.AddGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}
	if req.Code == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code and name are required")
	}

	created, err := h.games.CreateGame(req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *GameHandler) GetGames(c echo.Context) error {
	games, err := h.games.GetGames()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

func (h *GameHandler) GetGame(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	g, err := h.games.GetGame(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GameHandler) UpdateGame(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	var req game.UpdateGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request")
	}

	g, err := h.games.UpdateGame(id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GameHandler) DeleteGame(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.games.DeleteGame(id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"detail": "Game deleted"})
}

func (h *GameHandler) GetLeaderboard(c echo.Context) error {
	id, err := parseIntParam(c, "id")
	if err != nil {
		return err
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}

	entries, err := h.games.GetLeaderboard(id, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
