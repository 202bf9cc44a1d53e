package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/core/security"
)

// IdentityService resolves bearer tokens to stored users. Nothing is cached:
// every call verifies the token and reads the user again.
type IdentityService struct {
	tokens *security.TokenService
	users  ports.UserRepository
}

func NewIdentityService(tokens *security.TokenService, users ports.UserRepository) *IdentityService {
	return &IdentityService{tokens: tokens, users: users}
}

// Resolve verifies token and loads the user it names.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	return user, nil
}
