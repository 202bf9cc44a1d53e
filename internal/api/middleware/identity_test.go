package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

type stubResolver struct {
	users map[string]*domain.User
	calls int
}

func (r *stubResolver) Resolve(_ context.Context, token string) (*domain.User, error) {
	r.calls++
	u, ok := r.users[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func newResolver() *stubResolver {
	return &stubResolver{users: map[string]*domain.User{
		"good-token": {ID: "u1", Username: "root"},
	}}
}

func runIdentity(t *testing.T, resolver *stubResolver, header string, next echo.HandlerFunc) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/blogs", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return Identity(resolver)(next)(c)
}

func TestIdentity_ValidToken(t *testing.T) {
	var got *domain.User
	err := runIdentity(t, newResolver(), "Bearer good-token", func(c echo.Context) error {
		got = IdentityFromContext(c.Request().Context())
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected identity u1, got %+v", got)
	}
}

func TestIdentity_SchemeIsCaseInsensitive(t *testing.T) {
	called := false
	err := runIdentity(t, newResolver(), "bearer good-token", func(c echo.Context) error {
		called = IdentityFromContext(c.Request().Context()) != nil
		return nil
	})
	if err != nil || !called {
		t.Fatalf("expected identity attached, err=%v", err)
	}
}

func TestIdentity_MissingHeaderPassesThrough(t *testing.T) {
	resolver := newResolver()
	called := false
	err := runIdentity(t, resolver, "", func(c echo.Context) error {
		called = true
		if IdentityFromContext(c.Request().Context()) != nil {
			t.Fatalf("expected no identity")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if resolver.calls != 0 {
		t.Fatalf("resolver should not run without a header")
	}
}

func TestIdentity_Rejected(t *testing.T) {
	cases := map[string]string{
		"unknown token": "Bearer other-token",
		"wrong scheme":  "Token good-token",
		"no token":      "Bearer",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			err := runIdentity(t, newResolver(), header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	e := echo.New()
	mw := RequireIdentity()
	next := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if err := mw(next)(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	req = req.WithContext(WithIdentity(req.Context(), &domain.User{ID: "u1"}))
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if err := mw(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
