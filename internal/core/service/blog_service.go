package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
	"github.com/bloglist/bloglist-api/internal/pkg/validate"
)

// BlogService implements the blog use cases and keeps each owner's blog list
// in step with the blogs it creates.
//
// Creating a blog takes two writes: the blog itself, then the owner with the
// new id appended. They are not atomic. Concurrent creates by one user race
// on the owner document and the last save wins. Deleting a blog leaves its id
// in the owner's list.
type BlogService struct {
	blogs    ports.BlogRepository
	users    ports.UserRepository
	cache    ports.StatsCache
	validate *validate.Validator
	log      zerolog.Logger
}

// NewBlogService returns a BlogService. A nil cache disables stats caching.
func NewBlogService(blogs ports.BlogRepository, users ports.UserRepository, cache ports.StatsCache, log zerolog.Logger) *BlogService {
	if cache == nil {
		cache = noopStatsCache{}
	}
	return &BlogService{
		blogs:    blogs,
		users:    users,
		cache:    cache,
		validate: validate.New(),
		log:      log,
	}
}

// ListBlogs returns every blog with its owner's username and name joined in.
func (s *BlogService) ListBlogs(ctx context.Context) ([]ports.BlogView, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}

	seen := make(map[string]struct{})
	var ownerIDs []string
	for _, b := range blogs {
		if _, ok := seen[b.UserID]; ok || b.UserID == "" {
			continue
		}
		seen[b.UserID] = struct{}{}
		ownerIDs = append(ownerIDs, b.UserID)
	}

	owners := make(map[string]domain.UserSummary, len(ownerIDs))
	if len(ownerIDs) > 0 {
		users, err := s.users.FindByIDs(ctx, ownerIDs)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		for _, u := range users {
			owners[u.ID] = u.Summary()
		}
	}

	out := make([]ports.BlogView, 0, len(blogs))
	for _, b := range blogs {
		view := ports.BlogView{Blog: *b}
		if owner, ok := owners[b.UserID]; ok {
			view.Owner = &owner
		}
		out = append(out, view)
	}
	return out, nil
}

// CreateBlog stores a blog owned by actor and appends its id to actor's blog
// list. If the second write fails the blog stays stored without appearing in
// the owner's list, and the error is returned.
func (s *BlogService) CreateBlog(ctx context.Context, actor *domain.User, in ports.CreateBlogInput) (*domain.Blog, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}

	created, err := s.blogs.Create(ctx, &domain.Blog{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		Likes:  likes,
		UserID: actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}

	actor.BlogIDs = append(actor.BlogIDs, created.ID)
	if err := s.users.Save(ctx, actor); err != nil {
		s.log.Error().Err(err).
			Str("blog_id", created.ID).
			Str("user_id", actor.ID).
			Msg("blog stored but owner blog list not updated")
		return nil, fmt.Errorf("create blog: save owner: %w", err)
	}

	s.invalidateStats(ctx)
	s.log.Info().Str("blog_id", created.ID).Str("user_id", actor.ID).Msg("blog created")
	return created, nil
}

// UpdateBlog applies a partial update to any blog. No ownership check is
// made here, unlike DeleteBlog.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	patch := domain.BlogPatch{Title: in.Title, Author: in.Author, URL: in.URL, Likes: in.Likes}
	if patch.Empty() {
		blog, err := s.blogs.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("update blog: %w", err)
		}
		return blog, nil
	}

	updated, err := s.blogs.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}

	s.invalidateStats(ctx)
	return updated, nil
}

// DeleteBlog removes the blog with id if actor owns it. A missing blog yields
// domain.ErrBlogNotFound and writes nothing, so repeating it is safe.
func (s *BlogService) DeleteBlog(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	if !actor.OwnsBlog(blog) {
		s.log.Warn().
			Str("blog_id", blog.ID).
			Str("owner_id", blog.UserID).
			Str("user_id", actor.ID).
			Msg("delete refused: not the owner")
		return domain.ErrForbidden
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	s.invalidateStats(ctx)
	s.log.Info().Str("blog_id", id).Str("user_id", actor.ID).Msg("blog deleted")
	return nil
}

// Stats returns the aggregate over all blogs, from the cache when possible.
func (s *BlogService) Stats(ctx context.Context) (*domain.BlogStats, error) {
	cached, gen, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		s.log.Warn().Err(cacheErr).Msg("stats cache read failed, recomputing")
	} else if cached != nil {
		return cached, nil
	}

	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("blog stats: %w", err)
	}

	stats := domain.ComputeStats(blogs)
	// Without a generation from Get there is nothing to guard the write with.
	if cacheErr == nil {
		if err := s.cache.Set(ctx, stats, gen); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return &stats, nil
}

func (s *BlogService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context) (*domain.BlogStats, uint64, error) { return nil, 0, nil }
func (noopStatsCache) Set(context.Context, domain.BlogStats, uint64) error    { return nil }
func (noopStatsCache) Invalidate(context.Context) error                       { return nil }
