package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying user as the acting identity.
func WithIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext returns the identity resolved for the current request,
// or nil when the request carried no bearer token.
func IdentityFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(identityKey{}).(*domain.User)
	return user
}

// Identity resolves the bearer token of each request to a stored user and
// attaches it to the request context. A request without an Authorization
// header passes through with no identity; a header that does not carry a
// valid token for an existing user is rejected with domain.ErrUnauthorized.
func Identity(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			header := req.Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthorized
			}

			user, err := resolver.Resolve(req.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.SetRequest(req.WithContext(WithIdentity(req.Context(), user)))
			return next(c)
		}
	}
}

// RequireIdentity rejects requests that reached it without a resolved identity.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFromContext(c.Request().Context()) == nil {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
