package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/core/security"
	"github.com/bloglist/bloglist-api/internal/pkg/validate"
)

var errUsernameTaken = domain.NewValidationError("username", "username must be unique")

// UserService implements registration and the user listing.
type UserService struct {
	users    ports.UserRepository
	blogs    ports.BlogRepository
	hasher   *security.PasswordHasher
	validate *validate.Validator
	log      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	blogs ports.BlogRepository,
	hasher *security.PasswordHasher,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:    users,
		blogs:    blogs,
		hasher:   hasher,
		validate: validate.New(),
		log:      log,
	}
}

// Register validates the input, hashes the password and stores a user with
// no blogs. All validation happens before the password is hashed.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.UserView, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, errUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		BlogIDs:      []string{},
	})
	if err != nil {
		// Lost a race against another registration of the same username.
		if errors.Is(err, domain.ErrUserExists) {
			return nil, errUsernameTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &ports.UserView{
		ID:       created.ID,
		Username: created.Username,
		Name:     created.Name,
		Blogs:    []domain.BlogSummary{},
	}, nil
}

// ListUsers returns every user with the title, author and url of the blogs it
// owns. Ids that no longer resolve to a blog are left out.
func (s *UserService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var ids []string
	for _, u := range users {
		ids = append(ids, u.BlogIDs...)
	}

	byID := make(map[string]*domain.Blog)
	if len(ids) > 0 {
		blogs, err := s.blogs.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		for _, b := range blogs {
			byID[b.ID] = b
		}
	}

	out := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		view := ports.UserView{
			ID:       u.ID,
			Username: u.Username,
			Name:     u.Name,
			Blogs:    make([]domain.BlogSummary, 0, len(u.BlogIDs)),
		}
		for _, id := range u.BlogIDs {
			if b, ok := byID[id]; ok {
				view.Blogs = append(view.Blogs, b.Summary())
			}
		}
		out = append(out, view)
	}
	return out, nil
}
