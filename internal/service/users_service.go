package service

import (
	"context"

	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// UsersRepository defines the interface for user data access.
type UsersRepository interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UsersService handles business logic for users. There is none beyond
// store-level uniqueness, so it is a thin passthrough.
type UsersService struct {
	repo UsersRepository
}

// NewUsersService creates a new users service.
func NewUsersService(repo UsersRepository) *UsersService {
	return &UsersService{repo: repo}
}

// CreateUser creates a user; duplicate identities surface as conflicts.
func (s *UsersService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	return s.repo.Create(ctx, req)
}

// ListUsers retrieves all users.
func (s *UsersService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}
