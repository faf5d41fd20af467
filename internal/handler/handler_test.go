package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/tablica-app/backend/internal/auth"
	"github.com/tablica-app/backend/internal/handler"
	"github.com/tablica-app/backend/internal/models"
	"github.com/tablica-app/backend/internal/service"
	"github.com/tablica-app/backend/internal/storage/sqlite"
)

var codePattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.DiscardHandler)
	jwtManager := auth.NewJWTManager("test-secret-key", 7*24*time.Hour)
	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, logger)
	groupService := service.NewGroupService(store, logger)

	server := httptest.NewServer(handler.NewMux(authService, groupService, jwtManager))
	t.Cleanup(server.Close)
	return server
}

// doJSON posts body (marshalled) to path with an optional bearer token and
// decodes the response body into a generic map.
func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("decode response %s: %v", raw, err)
		}
	}
	return resp.StatusCode, parsed
}

func register(t *testing.T, server *httptest.Server, username, password string) {
	t.Helper()
	status, _ := doJSON(t, server, http.MethodPost, "/api/register", "",
		map[string]string{"username": username, "password": password})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", username, status)
	}
}

func login(t *testing.T, server *httptest.Server, username, password string) string {
	t.Helper()
	status, body := doJSON(t, server, http.MethodPost, "/api/login", "",
		map[string]string{"username": username, "password": password})
	if status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d", username, status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login %s: expected token in response", username)
	}
	return token
}

func TestRegisterEndpoint(t *testing.T) {
	server := setupTestServer(t)

	t.Run("success", func(t *testing.T) {
		register(t, server, "alice", "pw123456")
	})

	t.Run("duplicate username is 400", func(t *testing.T) {
		status, body := doJSON(t, server, http.MethodPost, "/api/register", "",
			map[string]string{"username": "alice", "password": "pw123456"})
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
		if body["message"] != "Username already taken" {
			t.Errorf("unexpected message: %v", body["message"])
		}
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		for _, payload := range []map[string]string{
			{"username": "", "password": "pw123456"},
			{"username": "bob", "password": ""},
			{},
		} {
			status, _ := doJSON(t, server, http.MethodPost, "/api/register", "", payload)
			if status != http.StatusBadRequest {
				t.Errorf("payload %v: expected 400, got %d", payload, status)
			}
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	server := setupTestServer(t)
	register(t, server, "alice", "pw123456")

	t.Run("token carries the username", func(t *testing.T) {
		token := login(t, server, "alice", "pw123456")
		claims, err := auth.NewJWTManager("test-secret-key", time.Hour).Validate(token)
		if err != nil {
			t.Fatalf("token did not validate: %v", err)
		}
		if claims.Username != "alice" {
			t.Errorf("username claim: expected 'alice', got '%s'", claims.Username)
		}
	})

	// Wrong password and unknown user must be indistinguishable.
	t.Run("wrong password and unknown user are the same 401", func(t *testing.T) {
		status1, body1 := doJSON(t, server, http.MethodPost, "/api/login", "",
			map[string]string{"username": "alice", "password": "wrong-pass"})
		status2, body2 := doJSON(t, server, http.MethodPost, "/api/login", "",
			map[string]string{"username": "nobody", "password": "pw123456"})
		if status1 != http.StatusUnauthorized || status2 != http.StatusUnauthorized {
			t.Errorf("expected 401/401, got %d/%d", status1, status2)
		}
		if body1["message"] != body2["message"] {
			t.Errorf("messages differ: %v vs %v", body1["message"], body2["message"])
		}
	})
}

func TestGroupEndpointsRequireAuth(t *testing.T) {
	server := setupTestServer(t)

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/create_group"},
		{http.MethodPost, "/api/join_group"},
		{http.MethodGet, "/api/my_groups"},
	}
	for _, c := range cases {
		status, _ := doJSON(t, server, c.method, c.path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("%s %s without token: expected 401, got %d", c.method, c.path, status)
		}

		req, _ := http.NewRequest(c.method, server.URL+c.path, nil)
		req.Header.Set("Authorization", "Bearer bogus-token")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s %s with bad token: expected 403, got %d", c.method, c.path, resp.StatusCode)
		}
	}
}

func TestGroupFlow(t *testing.T) {
	server := setupTestServer(t)

	register(t, server, "alice", "pw123456")
	aliceToken := login(t, server, "alice", "pw123456")

	var code string

	t.Run("alice creates a group as admin", func(t *testing.T) {
		status, body := doJSON(t, server, http.MethodPost, "/api/create_group", aliceToken,
			map[string]string{"name": "Team A", "description": "desc"})
		if status != http.StatusCreated {
			t.Fatalf("expected 201, got %d (%v)", status, body)
		}

		group, _ := body["group"].(map[string]any)
		membership, _ := body["membership"].(map[string]any)
		if group == nil || membership == nil {
			t.Fatalf("expected group and membership in response, got %v", body)
		}

		code, _ = group["code"].(string)
		if !codePattern.MatchString(code) {
			t.Errorf("code %q does not match NNNN-NNNN", code)
		}
		if membership["role"] != "admin" {
			t.Errorf("role: expected admin, got %v", membership["role"])
		}
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		status, _ := doJSON(t, server, http.MethodPost, "/api/create_group", aliceToken,
			map[string]string{"name": "Team B"})
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	register(t, server, "bob", "hunter2222")
	bobToken := login(t, server, "bob", "hunter2222")

	t.Run("bob joins by code as member", func(t *testing.T) {
		status, body := doJSON(t, server, http.MethodPost, "/api/join_group", bobToken,
			map[string]string{"code": code})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d (%v)", status, body)
		}
		membership, _ := body["membership"].(map[string]any)
		if membership["role"] != "member" {
			t.Errorf("role: expected member, got %v", membership["role"])
		}
	})

	t.Run("joining twice is 400", func(t *testing.T) {
		status, body := doJSON(t, server, http.MethodPost, "/api/join_group", bobToken,
			map[string]string{"code": code})
		if status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
		if body["message"] != "Already a member of this group" {
			t.Errorf("unexpected message: %v", body["message"])
		}
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		status, _ := doJSON(t, server, http.MethodPost, "/api/join_group", bobToken,
			map[string]string{"code": "0000-0000"})
		if status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})

	t.Run("my_groups lists the group exactly once", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/my_groups", nil)
		req.Header.Set("Authorization", "Bearer "+bobToken)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}

		var groups []models.Group
		if err := json.NewDecoder(resp.Body).Decode(&groups); err != nil {
			t.Fatalf("decode groups: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if groups[0].Name != "Team A" || groups[0].Code != code {
			t.Errorf("unexpected group: %+v", groups[0])
		}
	})
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t)
	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
