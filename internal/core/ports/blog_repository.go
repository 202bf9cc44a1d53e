package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// BlogRepository persists blogs. Malformed ids yield domain.ErrInvalidID and
// unknown ids domain.ErrBlogNotFound.
type BlogRepository interface {
	Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	// FindByIDs returns the blogs that exist among ids; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Blog, error)
	List(ctx context.Context) ([]*domain.Blog, error)
	// Update applies patch and returns the updated blog.
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

// StatsCache stores the computed blog statistics between writes.
//
// Every Invalidate bumps a generation. Get reports the current generation and
// Set only stores stats computed at that generation, so a write landing while
// stats are being recomputed never leaves the older figures cached.
type StatsCache interface {
	// Get returns (nil, gen, nil) on a miss.
	Get(ctx context.Context) (*domain.BlogStats, uint64, error)
	// Set stores stats computed at gen. It stores nothing, without error, if
	// the generation has moved on.
	Set(ctx context.Context, stats domain.BlogStats, gen uint64) error
	Invalidate(ctx context.Context) error
}
