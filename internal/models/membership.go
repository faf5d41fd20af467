package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the part a user plays within a group.
type Role string

const (
	// RoleAdmin is assigned to the creator of a group.
	RoleAdmin Role = "admin"
	// RoleMember is assigned to users who join an existing group.
	RoleMember Role = "member"
)

// Membership binds a User to a Group with a role.
// At most one Membership exists per (user, group) pair; the storage layer
// enforces this with a unique constraint.
type Membership struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string `json:"id"`

	// UserID references the member's User.
	UserID string `json:"userId"`

	// GroupID references the Group.
	GroupID string `json:"groupId"`

	// Role is either "admin" or "member".
	Role Role `json:"role"`

	// JoinedAt is the Unix timestamp when the membership was created.
	JoinedAt int64 `json:"joinedAt"`
}

// NewMembership builds a Membership with a fresh ID and join timestamp.
func NewMembership(userID, groupID string, role Role) *Membership {
	return &Membership{
		ID:       uuid.New().String(),
		UserID:   userID,
		GroupID:  groupID,
		Role:     role,
		JoinedAt: time.Now().Unix(),
	}
}
