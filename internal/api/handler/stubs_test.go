package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/api/middleware"
	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*ports.UserView, error)
	listFn     func(ctx context.Context) ([]ports.UserView, error)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.UserView, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]ports.UserView, error) {
	return s.listFn(ctx)
}

type stubBlogService struct {
	listFn   func(ctx context.Context) ([]ports.BlogView, error)
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateBlogInput) (*domain.Blog, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
	statsFn  func(ctx context.Context) (*domain.BlogStats, error)
}

func (s *stubBlogService) ListBlogs(ctx context.Context) ([]ports.BlogView, error) {
	return s.listFn(ctx)
}

func (s *stubBlogService) CreateBlog(ctx context.Context, actor *domain.User, in ports.CreateBlogInput) (*domain.Blog, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBlogService) UpdateBlog(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubBlogService) DeleteBlog(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubBlogService) Stats(ctx context.Context) (*domain.BlogStats, error) {
	return s.statsFn(ctx)
}

// newContext builds an echo context for method and target with an optional
// JSON body and an optional acting identity.
func newContext(method, target, body string, actor *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

