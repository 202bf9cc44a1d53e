package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// RegisterUserInput carries registration data from the transport layer.
type RegisterUserInput struct {
	Username string `validate:"required,utf16min=3"`
	Name     string
	Password string `validate:"required,utf16min=3,maxbytes=72"`
}

// UserView is a user with its owned blogs joined in.
type UserView struct {
	ID       string               `json:"id"`
	Username string               `json:"username"`
	Name     string               `json:"name"`
	Blogs    []domain.BlogSummary `json:"blogs"`
}

// UserService defines use-case operations for identities.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*UserView, error)
	ListUsers(ctx context.Context) ([]UserView, error)
}
