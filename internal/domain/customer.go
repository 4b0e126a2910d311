package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a read-only input to the order path, created by the
// data-import collaborator and never mutated here.
type Customer struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Age      int       `json:"age"`
	Location *string   `json:"location,omitempty"`
	Gender   *string   `json:"gender,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
