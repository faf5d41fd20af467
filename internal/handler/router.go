package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tablica-app/backend/internal/auth"
	"github.com/tablica-app/backend/internal/middleware"
	"github.com/tablica-app/backend/internal/service"
)

// NewMux builds the full route table. Register and login are open; every
// group route sits behind the bearer-token auth middleware.
func NewMux(authService *service.AuthService, groupService *service.GroupService, jwtManager *auth.JWTManager) *http.ServeMux {
	authHandler := NewAuthHandler(authService)
	groupHandler := NewGroupHandler(groupService)
	requireAuth := middleware.RequireAuth(jwtManager)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/register", authHandler.Register)
	mux.HandleFunc("POST /api/login", authHandler.Login)

	mux.Handle("POST /api/create_group", requireAuth(http.HandlerFunc(groupHandler.CreateGroup)))
	mux.Handle("POST /api/join_group", requireAuth(http.HandlerFunc(groupHandler.JoinGroup)))
	mux.Handle("GET /api/my_groups", requireAuth(http.HandlerFunc(groupHandler.MyGroups)))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
