package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// mockPaymentMethodsService mocks PaymentMethodsService for handler tests.
type mockPaymentMethodsService struct {
	createFunc func(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	getFunc    func(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
	listFunc   func(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error)
	updateFunc func(ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error)
	deleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPaymentMethodsService) CreatePaymentMethod(ctx context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}

	return nil, nil
}

func (m *mockPaymentMethodsService) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}

	return nil, nil
}

func (m *mockPaymentMethodsService) ListPaymentMethods(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filters)
	}

	return []models.PaymentMethod{}, nil
}

func (m *mockPaymentMethodsService) UpdatePaymentMethod(ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}

	return nil, nil
}

func (m *mockPaymentMethodsService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}

	return nil
}

func TestPaymentMethodsHandler_Create(t *testing.T) {
	t.Run("success returns 201 with the entity", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			createFunc: func(_ context.Context, req *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
				assert.Equal(t, "Cash float", req.Name)
				assert.Equal(t, "Cash", req.Type)

				return &models.PaymentMethod{ID: id, Name: req.Name, Type: req.Type, Status: "Active"}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		body := `{"name": "Cash float", "@type": "Cash"}`
		req := httptest.NewRequest(http.MethodPost, "http://test/paymentMethod", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp models.PaymentMethod
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "Cash float", resp.Name)
	})

	t.Run("validation error returns 400 with the message", func(t *testing.T) {
		mock := &mockPaymentMethodsService{
			createFunc: func(context.Context, *models.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
				return nil, apperrors.NewValidationError("", "name and @type are required")
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodPost, "http://test/paymentMethod", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "name and @type are required")
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		h := NewPaymentMethodsHandler(&mockPaymentMethodsService{})

		req := httptest.NewRequest(http.MethodPost, "http://test/paymentMethod", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentMethodsHandler_Get(t *testing.T) {
	t.Run("success returns entity", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			getFunc: func(_ context.Context, gotID uuid.UUID) (*models.PaymentMethod, error) {
				assert.Equal(t, id, gotID)

				return &models.PaymentMethod{ID: id, Name: "card", Type: "Cash", Status: "Active"}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "http://test/paymentMethod/"+id.String(), http.NoBody)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("fields query projects the response", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			getFunc: func(context.Context, uuid.UUID) (*models.PaymentMethod, error) {
				return &models.PaymentMethod{ID: id, Name: "card", Type: "Cash", Status: "Active"}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodGet,
			"http://test/paymentMethod/"+id.String()+"?fields=name", http.NoBody)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, id.String(), resp["id"])
		assert.Equal(t, "card", resp["name"])
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		mock := &mockPaymentMethodsService{
			getFunc: func(context.Context, uuid.UUID) (*models.PaymentMethod, error) {
				return nil, apperrors.NewNotFoundError("payment method", "payment method not found")
			},
		}
		h := NewPaymentMethodsHandler(mock)

		id := uuid.Must(uuid.NewV7())
		req := httptest.NewRequest(http.MethodGet, "http://test/paymentMethod/"+id.String(), http.NoBody)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		h := NewPaymentMethodsHandler(&mockPaymentMethodsService{})

		req := httptest.NewRequest(http.MethodGet, "http://test/paymentMethod/not-a-uuid", http.NoBody)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPaymentMethodsHandler_List(t *testing.T) {
	t.Run("passes filters through and returns array", func(t *testing.T) {
		var captured *models.ListPaymentMethodsFilters

		mock := &mockPaymentMethodsService{
			listFunc: func(_ context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error) {
				captured = filters

				return []models.PaymentMethod{{ID: uuid.Must(uuid.NewV7()), Type: "Cash"}}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodGet,
			"http://test/paymentMethod?status=Active&%40type=Cash&name=float", http.NoBody)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, "Active", captured.Status)
		assert.Equal(t, "Cash", captured.Type)
		assert.Equal(t, "float", captured.Name)

		var resp []models.PaymentMethod
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("empty store returns empty array not null", func(t *testing.T) {
		h := NewPaymentMethodsHandler(&mockPaymentMethodsService{})

		req := httptest.NewRequest(http.MethodGet, "http://test/paymentMethod", http.NoBody)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("fields projects each element", func(t *testing.T) {
		ids := []uuid.UUID{uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7())}
		mock := &mockPaymentMethodsService{
			listFunc: func(context.Context, *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error) {
				return []models.PaymentMethod{
					{ID: ids[0], Name: "a", Status: "Active"},
					{ID: ids[1], Name: "b", Status: "Active"},
				}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodGet, "http://test/paymentMethod?fields=name", http.NoBody)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 2)

		for i, item := range resp {
			assert.Len(t, item, 2)
			assert.Equal(t, ids[i].String(), item["id"])
		}
	})
}

func TestPaymentMethodsHandler_Update(t *testing.T) {
	t.Run("success returns merged entity", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			updateFunc: func(_ context.Context, gotID uuid.UUID, patch *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, "Renamed", patch.Name)

				return &models.PaymentMethod{ID: id, Name: "Renamed", Type: "Cash", Status: "Active"}, nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodPatch, "http://test/paymentMethod/"+id.String(),
			strings.NewReader(`{"name": "Renamed"}`))
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("validation error returns 400", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			updateFunc: func(context.Context, uuid.UUID, *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
				return nil, apperrors.NewValidationError("@type", "Invalid @type. Must be one of: ...")
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodPatch, "http://test/paymentMethod/"+id.String(),
			strings.NewReader(`{"@type": "Nope"}`))
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			updateFunc: func(context.Context, uuid.UUID, *models.UpdatePaymentMethodRequest) (*models.PaymentMethod, error) {
				return nil, apperrors.NewNotFoundError("payment method", "payment method not found")
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodPatch, "http://test/paymentMethod/"+id.String(),
			strings.NewReader(`{"name": "x"}`))
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Update(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPaymentMethodsHandler_Delete(t *testing.T) {
	t.Run("success returns 204 with empty body", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			deleteFunc: func(_ context.Context, gotID uuid.UUID) error {
				assert.Equal(t, id, gotID)

				return nil
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodDelete, "http://test/paymentMethod/"+id.String(), http.NoBody)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		id := uuid.Must(uuid.NewV7())
		mock := &mockPaymentMethodsService{
			deleteFunc: func(context.Context, uuid.UUID) error {
				return apperrors.NewNotFoundError("payment method", "payment method not found")
			},
		}
		h := NewPaymentMethodsHandler(mock)

		req := httptest.NewRequest(http.MethodDelete, "http://test/paymentMethod/"+id.String(), http.NoBody)
		req.SetPathValue("id", id.String())
		rec := httptest.NewRecorder()

		h.Delete(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
