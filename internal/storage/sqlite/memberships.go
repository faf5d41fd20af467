package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tablica-app/backend/internal/models"
	"github.com/tablica-app/backend/internal/storage"
)

// CreateMembership inserts a new membership into the database.
func (s *SQLiteStore) CreateMembership(ctx context.Context, membership *models.Membership) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memberships (id, user_id, group_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		membership.ID, membership.UserID, membership.GroupID, membership.Role, membership.JoinedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "memberships.user_id") {
			return fmt.Errorf("%w: user %s in group %s", storage.ErrDuplicateMembership, membership.UserID, membership.GroupID)
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

// GetMembership retrieves the membership for a (user, group) pair.
func (s *SQLiteStore) GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	membership := &models.Membership{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, group_id, role, joined_at FROM memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID,
	).Scan(&membership.ID, &membership.UserID, &membership.GroupID, &membership.Role, &membership.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: membership for user %s in group %s", storage.ErrNotFound, userID, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return membership, nil
}
