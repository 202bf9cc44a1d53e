package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that does not decode
// to a correctly signed identity claim.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the minimal claim carried by a bearer token.
type Identity struct {
	UserID   string
	Username string
}

// tokenClaims carries no registered claims, so tokens never expire and the
// same identity always signs to the same string.
type tokenClaims struct {
	Username string `json:"username"`
	UserID   string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens with a fixed secret.
type TokenService struct {
	secret []byte
}

// NewTokenService returns a TokenService for secret. An empty secret is a
// configuration error.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is empty")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a token for the given identity.
func (s *TokenService) Issue(userID, username string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		UserID:   userID,
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of token and decodes its identity claim.
// There is no expiry check: a correctly signed token stays valid until the
// secret changes.
func (s *TokenService) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
