package service

import (
	"fmt"
	"time"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/pkg/hash"
	"pixel-canvas-server/pkg/jwt"
)

// AuthService issues admin tokens for the reset endpoint.
type AuthService struct {
	passwordHash  string
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(passwordHash, jwtSecret string, jwtExp time.Duration) *AuthService {
	return &AuthService{
		passwordHash:  passwordHash,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExp,
	}
}

func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AuthService) Login(req *domain.AdminLoginRequest) (*domain.AdminLoginResponse, error) {
	if !s.Enabled() {
		return nil, ErrAdminDisabled
	}

	ok, err := hash.Verify(s.passwordHash, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := jwt.GenerateToken(domain.AdminSubject, s.jwtExpiration, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authorize checks a bearer token minted by Login.
func (s *AuthService) Authorize(token string) error {
	claims, err := jwt.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return err
	}
	if claims.Subject != domain.AdminSubject {
		return jwt.ErrInvalidToken
	}
	return nil
}
