package models

import (
	"time"

	"github.com/google/uuid"
)

// Group represents a group that users can create and join by code.
// Groups are immutable once created: no rename or delete in scope.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// Description is a short free-text description, required at creation.
	Description string `json:"description"`

	// Code is the globally unique join code, format "NNNN-NNNN"
	// (two 4-digit numeric segments joined by a hyphen).
	Code string `json:"code"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewGroup builds a Group with a fresh ID and creation timestamp.
func NewGroup(name, description, code string) *Group {
	return &Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Code:        code,
		CreatedAt:   time.Now().Unix(),
	}
}
