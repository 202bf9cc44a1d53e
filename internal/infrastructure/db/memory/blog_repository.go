package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

type BlogRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Blog
	order []string
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{byID: make(map[string]*domain.Blog)}
}

func (r *BlogRepository) Create(_ context.Context, b *domain.Blog) (*domain.Blog, error) {
	if err := checkID(b.UserID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneBlog(b)
	stored.ID = newID()
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneBlog(stored), nil
}

func (r *BlogRepository) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	return cloneBlog(b), nil
}

func (r *BlogRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			out = append(out, cloneBlog(b))
		}
	}
	return out, nil
}

// List returns blogs in creation order.
func (r *BlogRepository) List(_ context.Context) ([]*domain.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Blog, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneBlog(r.byID[id]))
	}
	return out, nil
}

func (r *BlogRepository) Update(_ context.Context, id string, p domain.BlogPatch) (*domain.Blog, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Likes != nil {
		b.Likes = *p.Likes
	}
	return cloneBlog(b), nil
}

func (r *BlogRepository) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}
