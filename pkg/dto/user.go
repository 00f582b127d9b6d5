package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserRead is a read DTO for users. HashedPassword never leaves the service layer.
type UserRead struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserCreate is a DTO for creating a user.
type UserCreate struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
}

// UserUpdate is a DTO for updating a user. Only the name is mutable.
type UserUpdate struct {
	Name *string
}
