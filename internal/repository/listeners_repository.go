package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KJithathma/tmf670-payment-method-api/internal/apperrors"
	"github.com/KJithathma/tmf670-payment-method-api/internal/models"
)

// ListenersRepository handles data access for registered event listeners.
type ListenersRepository struct {
	db *pgxpool.Pool
}

// NewListenersRepository creates a new listeners repository.
func NewListenersRepository(db *pgxpool.Pool) *ListenersRepository {
	return &ListenersRepository{db: db}
}

// Create inserts a new listener. A duplicate callback surfaces as a
// *apperrors.ConflictError via the unique index on callback.
func (r *ListenersRepository) Create(ctx context.Context, req *models.RegisterListenerRequest) (*models.Listener, error) {
	query := `
		INSERT INTO listeners (callback, query)
		VALUES ($1, $2)
		RETURNING id, callback, query, created_at
	`

	var listener models.Listener

	err := r.db.QueryRow(ctx, query, req.Callback, req.Query).Scan(
		&listener.ID, &listener.Callback, &listener.Query, &listener.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			slog.Warn("Listener callback already registered", "callback", req.Callback)

			return nil, apperrors.NewConflictError("Already registered")
		}

		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	return &listener, nil
}

// List retrieves all registered listeners in registration order.
// Dispatch notifies them in exactly this order.
func (r *ListenersRepository) List(ctx context.Context) ([]models.Listener, error) {
	query := `SELECT id, callback, query, created_at FROM listeners ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listeners: %w", err)
	}
	defer rows.Close()

	listeners := make([]models.Listener, 0)

	for rows.Next() {
		var listener models.Listener

		if err := rows.Scan(&listener.ID, &listener.Callback, &listener.Query, &listener.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listener: %w", err)
		}

		listeners = append(listeners, listener)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listeners: %w", err)
	}

	return listeners, nil
}

// Delete removes a listener by ID.
func (r *ListenersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listeners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listener: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("listener", "listener not found")
	}

	return nil
}
