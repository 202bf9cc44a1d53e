package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// AuthService exchanges credentials for a bearer token.
type AuthService interface {
	// Login returns domain.ErrInvalidCredentials for an unknown username and
	// for a wrong password alike.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// IdentityResolver turns a presented bearer token into a live user.
type IdentityResolver interface {
	// Resolve returns domain.ErrUnauthorized when the token does not verify or
	// names a user that no longer exists.
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
