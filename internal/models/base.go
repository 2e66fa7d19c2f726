// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the fields shared by every persisted entity.
type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsActive  bool      `json:"isActive"`
}

func newBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
}

// Touch bumps UpdatedAt to the current time.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
