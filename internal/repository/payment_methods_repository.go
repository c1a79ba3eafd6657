package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// paymentMethodColumns is the column set scanned into models.PaymentMethod.
const paymentMethodColumns = "id, name, description, type, status, status_date, details"

// PaymentMethodsRepository handles data access for payment methods.
// The envelope (name, type, status, status_date) is columnar; the
// type-specific field union is one jsonb document per row.
type PaymentMethodsRepository struct {
	db *pgxpool.Pool
}

// NewPaymentMethodsRepository creates a new payment methods repository.
func NewPaymentMethodsRepository(db *pgxpool.Pool) *PaymentMethodsRepository {
	return &PaymentMethodsRepository{db: db}
}

func scanPaymentMethod(row pgx.Row) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod

	err := row.Scan(
		&pm.ID, &pm.Name, &pm.Description, &pm.Type, &pm.Status,
		&pm.StatusDate, &pm.PaymentMethodDetails,
	)
	if err != nil {
		return nil, err
	}

	pm.BaseType = models.BaseTypePaymentMethod

	return &pm, nil
}

// Create inserts a new payment method and returns the stored row.
// The caller is responsible for defaults (status, statusDate) and validation.
func (r *PaymentMethodsRepository) Create(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error) {
	query := `
		INSERT INTO payment_methods (name, description, type, status, status_date, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + paymentMethodColumns

	created, err := scanPaymentMethod(r.db.QueryRow(ctx, query,
		pm.Name, pm.Description, pm.Type, pm.Status, pm.StatusDate, pm.PaymentMethodDetails,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	return created, nil
}

// GetByID retrieves a single payment method by ID.
func (r *PaymentMethodsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1`

	pm, err := scanPaymentMethod(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment method", "payment method not found")
		}

		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	return pm, nil
}

// buildPaymentMethodFilterConditions builds WHERE clause conditions and
// arguments from the equality filters.
func buildPaymentMethodFilterConditions(filters *models.ListPaymentMethodsFilters) (string, []any) {
	var conditions []string

	var args []any

	argCount := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, filters.Status)
		argCount++
	}

	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, filters.Type)
		argCount++
	}

	if filters.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name = $%d", argCount))
		args = append(args, filters.Name)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	return whereClause, args
}

// List retrieves payment methods matching the equality filters.
// No matches is an empty slice, not an error.
func (r *PaymentMethodsRepository) List(ctx context.Context, filters *models.ListPaymentMethodsFilters) ([]models.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods`

	whereClause, args := buildPaymentMethodFilterConditions(filters)
	query += whereClause
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	paymentMethods := make([]models.PaymentMethod, 0)

	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}

		paymentMethods = append(paymentMethods, *pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}

	return paymentMethods, nil
}

// Update applies only the patch fields to the stored row. statusDate is
// refreshed unconditionally; detail fields are merged into the jsonb document
// so absent keys keep their stored values. Returns the post-update row.
func (r *PaymentMethodsRepository) Update(
	ctx context.Context, id uuid.UUID, patch *models.UpdatePaymentMethodRequest, statusDate time.Time,
) (*models.PaymentMethod, error) {
	setClauses := []string{"status_date = $1"}
	args := []any{statusDate}
	argCount := 2

	addSet := func(column, value string) {
		if value == "" {
			return
		}

		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	addSet("name", patch.Name)
	addSet("description", patch.Description)
	addSet("type", patch.Type)
	addSet("status", patch.Status)

	if !patch.PaymentMethodDetails.IsEmpty() {
		setClauses = append(setClauses, fmt.Sprintf("details = details || $%d", argCount))
		args = append(args, patch.PaymentMethodDetails)
		argCount++
	}

	query := fmt.Sprintf(
		`UPDATE payment_methods SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argCount, paymentMethodColumns,
	)
	args = append(args, id)

	pm, err := scanPaymentMethod(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment method", "payment method not found")
		}

		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	return pm, nil
}

// Delete removes a payment method by ID and returns its last stored state
// (needed for the delete notification).
func (r *PaymentMethodsRepository) Delete(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error) {
	query := `DELETE FROM payment_methods WHERE id = $1 RETURNING ` + paymentMethodColumns

	pm, err := scanPaymentMethod(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment method", "payment method not found")
		}

		return nil, fmt.Errorf("failed to delete payment method: %w", err)
	}

	return pm, nil
}
