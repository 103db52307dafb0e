package services

import (
	"context"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/auth"
)

// AuthService issues access tokens against the user directory
type AuthService struct {
	users UserStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies credentials and returns a signed access token.
// A wrong password and an unknown email fail identically.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}
