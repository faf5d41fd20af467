package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/tablica-app/backend/internal/models"
	"github.com/tablica-app/backend/internal/storage"
)

var (
	// ErrMissingGroupFields is returned when name or description is absent.
	ErrMissingGroupFields = errors.New("name and description are required")
	// ErrMissingCode is returned when a join request carries no code.
	ErrMissingCode = errors.New("group code is required")
	// ErrGroupNotFound is returned when no group matches the given code.
	ErrGroupNotFound = errors.New("group not found")
	// ErrAlreadyMember is returned when the user already belongs to the group.
	ErrAlreadyMember = errors.New("already a member of this group")
)

// GroupService implements group creation, joining by code, and listing.
type GroupService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// CreateGroup creates a group with a freshly generated unique join code and
// records the creator as its admin. Both writes happen in one transaction.
func (s *GroupService) CreateGroup(ctx context.Context, userID, name, description string) (*models.Group, *models.Membership, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, nil, ErrMissingGroupFields
	}

	// Optimistic generate-then-insert: draw a code and let the unique index
	// on groups.code arbitrate collisions. With ~81 million possible codes a
	// collision is vanishingly rare, so the loop is unbounded rather than
	// capped; every iteration draws independently.
	for {
		group := models.NewGroup(name, description, generateGroupCode())
		membership := models.NewMembership(userID, group.ID, models.RoleAdmin)

		err := s.store.CreateGroupWithAdmin(ctx, group, membership)
		if errors.Is(err, storage.ErrCodeTaken) {
			s.logger.Debug("Group code collision, regenerating", "code", group.Code)
			continue
		}
		if err != nil {
			s.logger.Error("CreateGroup failed", "user_id", userID, "error", err)
			return nil, nil, err
		}

		s.logger.Info("Group created", "group_id", group.ID, "code", group.Code, "user_id", userID)
		return group, membership, nil
	}
}

// JoinGroup adds the user to the group identified by code with member role.
func (s *GroupService) JoinGroup(ctx context.Context, userID, code string) (*models.Group, *models.Membership, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil, ErrMissingCode
	}

	group, err := s.store.GetGroupByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		s.logger.Error("JoinGroup lookup failed", "code", code, "error", err)
		return nil, nil, err
	}

	// Fast-path duplicate check; the unique (user, group) constraint below
	// is the source of truth under concurrent joins.
	if _, err := s.store.GetMembership(ctx, userID, group.ID); err == nil {
		return nil, nil, ErrAlreadyMember
	}

	membership := models.NewMembership(userID, group.ID, models.RoleMember)
	if err := s.store.CreateMembership(ctx, membership); err != nil {
		if errors.Is(err, storage.ErrDuplicateMembership) {
			return nil, nil, ErrAlreadyMember
		}
		s.logger.Error("JoinGroup failed", "group_id", group.ID, "user_id", userID, "error", err)
		return nil, nil, err
	}

	s.logger.Info("User joined group", "group_id", group.ID, "user_id", userID)
	return group, membership, nil
}

// ListGroups returns every group the user belongs to.
func (s *GroupService) ListGroups(ctx context.Context, userID string) ([]models.Group, error) {
	groups, err := s.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListGroups failed", "user_id", userID, "error", err)
		return nil, err
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// generateGroupCode draws two independent 4-digit numbers in [1000, 9999]
// and formats them as "NNNN-NNNN".
func generateGroupCode() string {
	return fmt.Sprintf("%04d-%04d", 1000+rand.IntN(9000), 1000+rand.IntN(9000))
}

// NormalizeCode canonicalizes user-entered group codes: whitespace trimmed,
// uppercased, separators stripped, and the hyphen reinserted after the
// fourth character of an 8-character code. Mirrors the mobile client's
// input formatting so server and client agree on the canonical form.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	if len(code) == 8 {
		return code[:4] + "-" + code[4:]
	}
	return code
}
