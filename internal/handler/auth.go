package handler

import (
	"errors"
	"net/http"

	"github.com/tablica-app/backend/internal/auth"
	"github.com/tablica-app/backend/internal/service"
)

// AuthHandler serves the unauthenticated registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err := h.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeMessage(w, http.StatusCreated, "User registered successfully")
	case errors.Is(err, service.ErrMissingCredentials):
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
	case errors.Is(err, auth.ErrWeakPassword):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUsernameTaken):
		writeMessage(w, http.StatusBadRequest, "Username already taken")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, _, err := h.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
	case errors.Is(err, service.ErrMissingCredentials):
		writeMessage(w, http.StatusBadRequest, "Username and password are required")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
