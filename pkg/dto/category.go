package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRead is a read DTO for categories.
type CategoryRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryCreate is a DTO for creating a category.
type CategoryCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Type   string
}

// CategoryUpdate is a DTO for renaming a category.
type CategoryUpdate struct {
	Name *string
}

// CategoryRef is the compact category shape embedded in transaction views.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
	Type string
}
