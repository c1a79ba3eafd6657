package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// ListenersRepository defines the interface for listener data access.
type ListenersRepository interface {
	Create(ctx context.Context, req *models.RegisterListenerRequest) (*models.Listener, error)
	List(ctx context.Context) ([]models.Listener, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListenersService handles business logic for the hub (listener registration).
type ListenersService struct {
	repo ListenersRepository
}

// NewListenersService creates a new listeners service.
func NewListenersService(repo ListenersRepository) *ListenersService {
	return &ListenersService{repo: repo}
}

// RegisterListener registers a callback. A duplicate callback surfaces as a
// conflict from the store's unique constraint.
func (s *ListenersService) RegisterListener(ctx context.Context, req *models.RegisterListenerRequest) (*models.RegisterListenerResponse, error) {
	listener, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &models.RegisterListenerResponse{
		ID:       listener.ID,
		Callback: listener.Callback,
	}, nil
}

// DeregisterListener removes a listener by ID.
func (s *ListenersService) DeregisterListener(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
