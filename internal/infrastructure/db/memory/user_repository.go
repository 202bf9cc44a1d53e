package memory

import (
	"context"
	"sync"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}

	stored := cloneUser(u)
	stored.ID = newID()
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

// List returns users in creation order.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.byID[id]))
	}
	return out, nil
}

// Save replaces the stored user. The last save wins.
func (r *UserRepository) Save(_ context.Context, u *domain.User) error {
	if err := checkID(u.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, existing := range r.byID {
		if id != u.ID && existing.Username == u.Username {
			return domain.ErrUserExists
		}
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}
