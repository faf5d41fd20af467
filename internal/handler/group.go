package handler

import (
	"errors"
	"net/http"

	"github.com/tablica-app/backend/internal/middleware"
	"github.com/tablica-app/backend/internal/models"
	"github.com/tablica-app/backend/internal/service"
)

// GroupHandler serves the authenticated group endpoints. The auth middleware
// has already verified the token and injected the user's identity into the
// request context before any of these run.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groupService}
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type joinGroupRequest struct {
	Code string `json:"code"`
}

type groupResponse struct {
	Message    string             `json:"message"`
	Group      *models.Group      `json:"group"`
	Membership *models.Membership `json:"membership"`
}

// CreateGroup handles POST /api/create_group.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	group, membership, err := h.groups.CreateGroup(r.Context(), userID, req.Name, req.Description)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, groupResponse{
			Message:    "Group created successfully",
			Group:      group,
			Membership: membership,
		})
	case errors.Is(err, service.ErrMissingGroupFields):
		writeMessage(w, http.StatusBadRequest, "Name and description are required")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// JoinGroup handles POST /api/join_group.
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := middleware.GetUserID(r.Context())
	group, membership, err := h.groups.JoinGroup(r.Context(), userID, req.Code)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, groupResponse{
			Message:    "Joined group successfully",
			Group:      group,
			Membership: membership,
		})
	case errors.Is(err, service.ErrMissingCode):
		writeMessage(w, http.StatusBadRequest, "Group code is required")
	case errors.Is(err, service.ErrGroupNotFound):
		writeMessage(w, http.StatusNotFound, "Group not found")
	case errors.Is(err, service.ErrAlreadyMember):
		writeMessage(w, http.StatusBadRequest, "Already a member of this group")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// MyGroups handles GET /api/my_groups.
func (h *GroupHandler) MyGroups(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	groups, err := h.groups.ListGroups(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}
