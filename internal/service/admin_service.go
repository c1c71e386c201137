package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/personal-blog-api/internal/auth"
)

// ErrInvalidPassword is returned when the admin password does not match
var ErrInvalidPassword = errors.New("invalid password")

// adminService is the concrete implementation of AdminService
type adminService struct {
	password string
	tokens   *auth.TokenManager
}

// NewAdminService creates a new AdminService
func NewAdminService(password string, tokens *auth.TokenManager) AdminService {
	return &adminService{
		password: password,
		tokens:   tokens,
	}
}

// Login exchanges the shared admin password for a signed credential
func (s *adminService) Login(ctx context.Context, password string) (*LoginResult, error) {
	if password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return nil, ErrInvalidPassword
	}

	token, expiresAt, err := s.tokens.Issue(auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		Role:      auth.RoleAdmin,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks a credential presented on a guarded route
func (s *adminService) Verify(token string) (*auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != auth.RoleAdmin {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}
