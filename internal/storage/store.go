// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tablica-app/backend/internal/models"
)

// Sentinel errors returned by Store implementations. Callers match them
// with errors.Is; implementations wrap them with driver detail.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when a user insert collides with the
	// unique index on usernames.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrCodeTaken is returned when a group insert collides with the
	// unique index on join codes. Callers regenerate the code and retry.
	ErrCodeTaken = errors.New("group code already taken")

	// ErrDuplicateMembership is returned when a membership insert collides
	// with the unique (user, group) constraint.
	ErrDuplicateMembership = errors.New("membership already exists")
)

// Store defines the interface for user, group, and membership persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user.
	// Returns ErrUsernameTaken if the username is already registered.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	// Returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroupWithAdmin persists a new group together with the creator's
	// admin membership in a single transaction: both rows land or neither.
	// Returns ErrCodeTaken if the group's join code is already in use.
	CreateGroupWithAdmin(ctx context.Context, group *models.Group, membership *models.Membership) error

	// GetGroupByCode retrieves a group by its join code (exact match;
	// callers normalize the code first).
	// Returns ErrNotFound if no group has that code.
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)

	// CreateMembership persists a new membership.
	// Returns ErrDuplicateMembership if the user already belongs to the group.
	CreateMembership(ctx context.Context, membership *models.Membership) error

	// GetMembership retrieves the membership for a (user, group) pair.
	// Returns ErrNotFound if the user does not belong to the group.
	GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)

	// ListGroupsByUser returns every group the user belongs to, in
	// membership insertion order.
	ListGroupsByUser(ctx context.Context, userID string) ([]models.Group, error)

	// Close releases any resources held by the store.
	Close() error
}
