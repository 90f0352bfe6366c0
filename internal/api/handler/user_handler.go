package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/domain"
	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts and authentication.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Signup creates a new account. There is no auto-login: the client is
// expected to call Login afterwards.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /users/signup [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.Create(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token: result.Token,
		Email: result.Email,
		Role:  string(result.Role),
	})
}

// Me returns the caller's own account.
//
// @Summary      Get the current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  messageResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetMe(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByUsername returns a user by username: the full record for
// admin/superadmin callers, a reduced projection for everyone else.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      401       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /users/username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetByUsername(c.Request().Context(), principal, c.Param("username"))
	if err != nil {
		return err
	}

	if profile.Reduced {
		return c.JSON(http.StatusOK, toPublicUserResponse(profile.Public))
	}
	return c.JSON(http.StatusOK, toUserResponse(profile.User))
}

// List returns every account. Privileged roles only; the route is
// additionally guarded by the RequireRole middleware.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.service.GetAll(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, out)
}
