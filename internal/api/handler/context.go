package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/api/middleware"
	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// actorFrom returns the identity attached by the Identity middleware. It
// fails fast with domain.ErrUnauthorized before any service call when the
// request carried no bearer token.
func actorFrom(c echo.Context) (*domain.User, error) {
	user := middleware.IdentityFromContext(c.Request().Context())
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func errInvalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
