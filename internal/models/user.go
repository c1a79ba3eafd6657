package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a minimal account record. Uniqueness is enforced at the store level
// on email; creation does no other validation.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateUserResponse is the POST /users 201 body.
type CreateUserResponse struct {
	ID uuid.UUID `json:"id"`
}
