package auth

import (
	"context"
	"errors"
	"time"
)

// Service authenticates users and issues bearer tokens.
type Service struct {
	users    UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewService(users UserStore, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Login verifies the credentials and returns a signed token plus the
// user record. A missing user and a wrong password are deliberately
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.secret, u, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Verify parses and validates a bearer token.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	return ParseToken(s.secret, tokenStr)
}
