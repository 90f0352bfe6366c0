package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// GameHandler handles HTTP requests for game operations.
type GameHandler struct {
	service ports.GameService
}

func NewGameHandler(service ports.GameService) *GameHandler {
	return &GameHandler{service: service}
}

// List handles GET /games.
//
// @Summary      Get all games
// @Tags         games
// @Produce      json
// @Success      200  {array}  gameResponse
// @Router       /games [get]
func (h *GameHandler) List(c echo.Context) error {
	games, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameListResponse(games))
}

// Random handles GET /games/random.
//
// @Summary      Get one random game
// @Tags         games
// @Produce      json
// @Success      200  {object}  gameResponse
// @Failure      404  {object}  messageResponse
// @Router       /games/random [get]
func (h *GameHandler) Random(c echo.Context) error {
	game, err := h.service.GetRandom(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameResponse(game))
}

// Get handles GET /games/:id.
//
// @Summary      Get a game by id
// @Tags         games
// @Produce      json
// @Param        id   path      string  true  "Game id"
// @Success      200  {object}  gameResponse
// @Failure      404  {object}  messageResponse
// @Router       /games/{id} [get]
func (h *GameHandler) Get(c echo.Context) error {
	game, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameResponse(game))
}

// ListByUsername handles GET /games/username/:username.
//
// @Summary      Get the games owned by a user
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {array}   gameResponse
// @Failure      401       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /games/username/{username} [get]
func (h *GameHandler) ListByUsername(c echo.Context) error {
	games, err := h.service.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameListResponse(games))
}

// Filter handles POST /games/filter. Every dimension is optional; an
// absent dimension is excluded from the query rather than matched as a
// wildcard.
//
// @Summary      Filter games by tags, intensity, groups and duration
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      filterRequest  true  "Filter criteria"
// @Success      200   {array}   gameResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /games/filter [post]
func (h *GameHandler) Filter(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	games, err := h.service.GetFiltered(c.Request().Context(), toFilterInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameListResponse(games))
}

// Create handles POST /games.
//
// @Summary      Create a new game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      gameRequest  true  "Game details; tags are plain labels"
// @Success      201   {object}  gameResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /games [post]
func (h *GameHandler) Create(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Groups == nil {
		return domain.Required("Groups")
	}

	game, err := h.service.Create(c.Request().Context(), toGameInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toGameResponse(game))
}

// Update handles PUT /games/:id — a full-field replace, permitted only
// for the owner or a privileged role.
//
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Game id"
// @Param        body  body      gameRequest  true  "Replacement game details"
// @Success      200   {object}  gameResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /games/{id} [put]
func (h *GameHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Groups == nil {
		return domain.Required("Groups")
	}

	game, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), toGameInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGameResponse(game))
}

// Delete handles DELETE /games/:id under the same authorization rule as
// Update.
//
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Game id"
// @Success      204  "deleted"
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /games/{id} [delete]
func (h *GameHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
