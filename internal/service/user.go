package service

import (
	"context"
	"fmt"

	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"
)

// UserService handles user lookup and administration
type UserService struct {
	postgresRepo *repository.PostgresRepository
}

// NewUserService creates a new user service
func NewUserService(postgresRepo *repository.PostgresRepository) *UserService {
	return &UserService{
		postgresRepo: postgresRepo,
	}
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.postgresRepo.GetUser(ctx, id)
}

// List retrieves all users (admin only)
func (s *UserService) List(ctx context.Context, actor *models.User) ([]models.User, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	return s.postgresRepo.ListUsers(ctx)
}

// Create registers a new user
func (s *UserService) Create(ctx context.Context, req models.UserRequest) (*models.User, error) {
	user := &models.User{
		Username:    req.Username,
		DisplayName: req.DisplayName,
	}
	if err := s.postgresRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates a user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, id uint, req models.UserRequest) (*models.User, error) {
	if actor.ID != id && !actor.IsAdmin {
		return nil, ErrForbidden
	}
	user, err := s.postgresRepo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Username = req.Username
	user.DisplayName = req.DisplayName
	if err := s.postgresRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetBanned toggles a user's banned flag (admin only)
func (s *UserService) SetBanned(ctx context.Context, actor *models.User, id uint, banned bool) error {
	if !actor.IsAdmin {
		return ErrForbidden
	}
	return s.postgresRepo.SetUserBanned(ctx, id, banned)
}
