package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

func newAuthSvc(users *stubUserRepo) *AuthService {
	return NewAuthService(users, testHasher(), testTokens(), nopLogger())
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	seeded := seedUser(users, "root", "Superuser")
	svc := newAuthSvc(users)

	token, user, err := svc.Login(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.ID != seeded.ID || user.Name != "Superuser" {
		t.Fatalf("unexpected user: %+v", user)
	}

	id, err := testTokens().Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.UserID != seeded.ID || id.Username != "root" {
		t.Fatalf("unexpected identity in token: %+v", id)
	}
}

func TestAuthService_Login_SameUserSameToken(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, "root", "Superuser")
	svc := newAuthSvc(users)

	first, _, err := svc.Login(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, _, err := svc.Login(context.Background(), "root", "secret")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical tokens for the same identity")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	users := newStubUserRepo()
	seedUser(users, "root", "Superuser")
	svc := newAuthSvc(users)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "root", "wrong"},
		{"unknown user", "nobody", "secret"},
		{"empty username", "", "secret"},
		{"empty password", "root", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, user, err := svc.Login(context.Background(), tc.username, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if token != "" || user != nil {
				t.Fatalf("expected no token and no user on failure")
			}
		})
	}
}
