package services

import (
	"context"
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/auth"
	"github.com/eventum-app/eventum/internal/pkg/logger"
)

// UserService owns the administrative user directory
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Create registers a new user with a hashed credential
func (s *UserService) Create(ctx context.Context, req dto.NewUserRequest) (*dto.UserResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if req.Admin {
		role = models.RoleAdmin
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		RoleType:  role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(role)).Msg("User created")
	response := toUserResponse(user)
	return &response, nil
}

// List retrieves users, optionally restricted to the given ids
func (s *UserService) List(ctx context.Context, ids []int64, from, size int) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, ids, from, size)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrUserNotFound
	}
	return nil
}
