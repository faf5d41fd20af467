package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tablica-app/backend/internal/models"
	"github.com/tablica-app/backend/internal/storage"
)

// CreateGroupWithAdmin inserts a group and the creator's admin membership in
// a single transaction, so a failure on either write leaves no partial state.
func (s *SQLiteStore) CreateGroupWithAdmin(ctx context.Context, group *models.Group, membership *models.Membership) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, code, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.Code, group.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "groups.code") {
			return fmt.Errorf("%w: %s", storage.ErrCodeTaken, group.Code)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO memberships (id, user_id, group_id, role, joined_at) VALUES (?, ?, ?, ?, ?)",
		membership.ID, membership.UserID, membership.GroupID, membership.Role, membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetGroupByCode retrieves a group by its join code.
func (s *SQLiteStore) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, code, created_at FROM groups WHERE code = ?",
		code,
	).Scan(&group.ID, &group.Name, &group.Description, &group.Code, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: group code %s", storage.ErrNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by code: %w", err)
	}
	return group, nil
}

// ListGroupsByUser returns every group the user belongs to, ordered by when
// the membership was created.
func (s *SQLiteStore) ListGroupsByUser(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.description, g.code, g.created_at
		FROM groups g
		JOIN memberships m ON m.group_id = g.id
		WHERE m.user_id = ?
		ORDER BY m.joined_at, m.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.Code, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}
