package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KJithathma/tmf670-payment-method-api/internal/api/validation"
	"github.com/KJithathma/tmf670-payment-method-api/internal/datatypes"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// PaymentMethodsRepository defines the interface for payment method data access.
type PaymentMethodsRepository interface {
	Create(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
	List(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest, statusDate time.Time) (*models.PaymentMethod, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
}

// PaymentMethodsService handles business logic for payment methods:
// validation, server-assigned defaults, persistence, and post-commit
// notification. Clock and publisher are explicit dependencies so the layers
// stay independently testable.
type PaymentMethodsService struct {
	repo      PaymentMethodsRepository
	publisher EventPublisher
	basePath  string
	now       func() time.Time
}

// NewPaymentMethodsService creates a new payment methods service.
// basePath is the API mount point used to derive entity hrefs.
func NewPaymentMethodsService(repo PaymentMethodsRepository, publisher EventPublisher, basePath string) *PaymentMethodsService {
	return &PaymentMethodsService{
		repo:      repo,
		publisher: publisher,
		basePath:  basePath,
		now:       time.Now,
	}
}

// decorate fills the computed fields (href, base type) on a stored entity.
func (s *PaymentMethodsService) decorate(pm *models.PaymentMethod) {
	pm.Href = s.basePath + "/paymentMethod/" + pm.ID.String()
	pm.BaseType = models.BaseTypePaymentMethod
}

// CreatePaymentMethod validates the payload, applies server-assigned defaults
// (status Active, statusDate now, fixed base type), persists it, and emits a
// Create event. The returned entity carries the computed id and href.
func (s *PaymentMethodsService) CreatePaymentMethod(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	pm := &models.PaymentMethod{
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 req.Type,
		Status:               req.Status,
		StatusDate:           s.now().UTC(),
		BaseType:             models.BaseTypePaymentMethod,
		PaymentMethodDetails: req.PaymentMethodDetails,
	}

	if pm.Status == "" {
		pm.Status = models.StatusActive
	}

	if err := validation.ValidatePaymentMethod(pm, true); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, pm)
	if err != nil {
		return nil, err
	}

	s.decorate(created)
	s.publisher.PublishEvent(ctx, datatypes.PaymentMethodCreate, created)

	return created, nil
}

// GetPaymentMethod retrieves a single payment method by ID.
func (s *PaymentMethodsService) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	pm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.decorate(pm)

	return pm, nil
}

// ListPaymentMethods retrieves payment methods matching the equality filters.
func (s *PaymentMethodsService) ListPaymentMethods(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error) {
	paymentMethods, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	for i := range paymentMethods {
		s.decorate(&paymentMethods[i])
	}

	return paymentMethods, nil
}

// UpdatePaymentMethod applies a partial update. The merged result of the
// stored record and the patch is validated, not the patch alone; statusDate
// is refreshed unconditionally. On success an AttributeValueChange event is
// emitted with the post-update entity.
func (s *PaymentMethodsService) UpdatePaymentMethod(ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	statusDate := s.now().UTC()

	merged := existing.Merge(patch)
	merged.StatusDate = statusDate

	if err := validation.ValidatePaymentMethod(merged, false); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch, statusDate)
	if err != nil {
		return nil, err
	}

	s.decorate(updated)
	s.publisher.PublishEvent(ctx, datatypes.PaymentMethodAttributeValueChange, updated)

	return updated, nil
}

// DeletePaymentMethod removes a payment method by ID and emits a Delete event
// carrying the entity's last known state.
func (s *PaymentMethodsService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.decorate(deleted)
	s.publisher.PublishEvent(ctx, datatypes.PaymentMethodDelete, deleted)

	return nil
}
