package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

var _ domain.UserService = (*UserService)(nil)

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if strings.TrimSpace(user.Name) == "" {
		return nil, validationError("user name must not be blank")
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, validationError("user email must not be blank")
	}

	created := models.User{Name: user.Name, Email: user.Email}
	if err := s.repo.CreateUser(ctx, &created); err != nil {
		return nil, userStoreError(err, "create user")
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("User created")
	return &created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return requireUser(ctx, s.repo, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of patch.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	user, err := requireUser(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("user name must not be blank")
		}
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, validationError("user email must not be blank")
		}
		user.Email = *patch.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, userStoreError(err, "update user")
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if _, err := requireUser(ctx, s.repo, id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return userStoreError(err, "delete user")
	}

	s.logger.Info().Int64("user_id", id).Msg("User deleted")
	return nil
}

func userStoreError(err error, op string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return fmt.Errorf("%w: %v", ErrEmailNotUnique, err)
	}
	return storeError(err, ErrUserNotFound, op)
}
