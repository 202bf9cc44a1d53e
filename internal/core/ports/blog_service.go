package ports

import (
	"context"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

// CreateBlogInput carries the fields of a new blog. A nil Likes defaults to 0.
type CreateBlogInput struct {
	Title  string `validate:"required"`
	Author string
	URL    string `validate:"required"`
	Likes  *int   `validate:"omitnil,min=0"`
}

// UpdateBlogInput carries a partial update. Nil fields are left untouched.
type UpdateBlogInput struct {
	Title  *string `validate:"omitnil,min=1"`
	Author *string
	URL    *string `validate:"omitnil,min=1"`
	Likes  *int    `validate:"omitnil,min=0"`
}

// BlogView is a blog with its owner joined in. Owner is nil when the owner
// document no longer exists.
type BlogView struct {
	domain.Blog
	Owner *domain.UserSummary `json:"owner"`
}

// BlogService defines use-case operations for blogs.
//
// Create and Delete take the acting user explicitly; Update deliberately does
// not, so any caller may update any blog.
type BlogService interface {
	ListBlogs(ctx context.Context) ([]BlogView, error)
	CreateBlog(ctx context.Context, actor *domain.User, input CreateBlogInput) (*domain.Blog, error)
	UpdateBlog(ctx context.Context, id string, input UpdateBlogInput) (*domain.Blog, error)
	DeleteBlog(ctx context.Context, actor *domain.User, id string) error
	Stats(ctx context.Context) (*domain.BlogStats, error)
}
