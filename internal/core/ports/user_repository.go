package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// UserRepository persists identities.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// A username collision yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs returns the users that exist among ids; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Save overwrites the stored document with user. Concurrent saves of the
	// same user are last-write-wins.
	Save(ctx context.Context, user *domain.User) error
}
