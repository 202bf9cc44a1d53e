package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/api/metrics"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// UserHandler handles registration and the user listing.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /api/users.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  ports.UserView
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterUserInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /api/users.
//
// @Summary      List users with their blogs
// @Tags         users
// @Produce      json
// @Success      200  {array}   ports.UserView
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
