package models

import (
	"time"

	"github.com/google/uuid"
)

// Listener is a registered event subscriber (TMF hub entry). Callback is
// globally unique; Query is stored but never interpreted by dispatch.
type Listener struct {
	ID        uuid.UUID `json:"id"`
	Callback  string    `json:"callback"`
	Query     string    `json:"query,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// RegisterListenerRequest is the POST /hub body.
type RegisterListenerRequest struct {
	Callback string `json:"callback" validate:"required,url,max=2048"`
	Query    string `json:"query,omitempty" validate:"omitempty,max=2048"`
}

// RegisterListenerResponse is the POST /hub 201 body.
type RegisterListenerResponse struct {
	ID       uuid.UUID `json:"id"`
	Callback string    `json:"callback"`
}
