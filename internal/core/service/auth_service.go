package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/core/security"
)

// AuthService implements login.
type AuthService struct {
	users  ports.UserRepository
	hasher *security.PasswordHasher
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *security.PasswordHasher, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, log: log}
}

// Login checks the credentials and issues a bearer token. Unknown usernames
// and wrong passwords both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user logged in")
	return token, user, nil
}
