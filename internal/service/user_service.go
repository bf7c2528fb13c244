package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/repository"

	"go.uber.org/zap"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*models.AppUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: user not found", zap.Int("user_id", id))
			return nil, NewNotFound("user", id)
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.AppUser, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, username string) (*models.AppUser, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "must not be blank")
	}

	user := &models.AppUser{Username: username}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	logger.Info("Service: user created", zap.Int("user_id", user.ID))
	return user, nil
}

// UpdateUser replaces the username. AppUser has a single mutable
// field, so this is a full replace rather than a merge.
func (s *UserService) UpdateUser(ctx context.Context, id int, username string) (*models.AppUser, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "must not be blank")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: user not found", zap.Int("user_id", id))
			return nil, NewNotFound("user", id)
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	user.Username = username
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	err := s.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: user not found", zap.Int("user_id", id))
			return NewNotFound("user", id)
		}
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
