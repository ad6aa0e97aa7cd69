package keycloak

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/schoollib-identity/internal/domain/identity"
	"github.com/oksasatya/schoollib-identity/pkg/apperror"
)

// fakeKeycloak emulates the handful of realm and admin endpoints the client
// talks to.
type fakeKeycloak struct {
	mu          sync.Mutex
	users       map[string]userRepresentation
	roleMapping map[string][]string
	actions     map[string][]string
	adminTokens int
	verifyMails []string
	lifespans   []string
	logouts     []string
	lastPatch   map[string]any
	failReset   bool
}

func newFakeKeycloak() *fakeKeycloak {
	return &fakeKeycloak{
		users:       map[string]userRepresentation{},
		roleMapping: map[string][]string{},
		actions:     map[string][]string{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeKeycloak) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /realms/master/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("grant_type") != "password" || r.Form.Get("username") != "admin" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_grant"})
			return
		}
		f.mu.Lock()
		f.adminTokens++
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "admin-token", "token_type": "Bearer", "expires_in": 60})
	})

	mux.HandleFunc("POST /realms/schoollibrary/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		switch r.Form.Get("grant_type") {
		case "password":
			if r.Form.Get("password") != "Secret1!" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_grant", "error_description": "Invalid user credentials"})
				return
			}
		case "refresh_token":
			switch r.Form.Get("refresh_token") {
			case "boom":
				writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream"})
				return
			case "r1":
			default:
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":       "user-access",
			"refresh_token":      "user-refresh",
			"token_type":         "Bearer",
			"expires_in":         300,
			"refresh_expires_in": 1800,
		})
	})

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer admin-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			h(w, r)
		}
	}

	mux.HandleFunc("POST /admin/realms/schoollibrary/users", admin(func(w http.ResponseWriter, r *http.Request) {
		var u userRepresentation
		_ = json.NewDecoder(r.Body).Decode(&u)
		for _, existing := range f.users {
			if existing.Email == u.Email {
				writeJSON(w, http.StatusConflict, map[string]string{"errorMessage": "User exists with same email"})
				return
			}
		}
		u.ID = "kc-" + u.Username
		f.users[u.ID] = u
		w.Header().Set("Location", "http://"+r.Host+r.URL.Path+"/"+u.ID)
		w.WriteHeader(http.StatusCreated)
	}))

	mux.HandleFunc("GET /admin/realms/schoollibrary/users", admin(func(w http.ResponseWriter, r *http.Request) {
		out := []userRepresentation{}
		for _, u := range f.users {
			if u.Email == r.URL.Query().Get("email") {
				out = append(out, u)
			}
		}
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc("GET /admin/realms/schoollibrary/roles/{name}", admin(func(w http.ResponseWriter, r *http.Request) {
		switch name := r.PathValue("name"); name {
		case "STUDENT", "TEACHER", "LIBRARIAN", "ADMIN", "offline_access":
			writeJSON(w, http.StatusOK, roleRepresentation{ID: "role-" + name, Name: name})
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Could not find role"})
		}
	}))

	mux.HandleFunc("POST /admin/realms/schoollibrary/users/{id}/role-mappings/realm", admin(func(w http.ResponseWriter, r *http.Request) {
		var roles []roleRepresentation
		_ = json.NewDecoder(r.Body).Decode(&roles)
		for _, role := range roles {
			f.roleMapping[r.PathValue("id")] = append(f.roleMapping[r.PathValue("id")], role.Name)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("GET /admin/realms/schoollibrary/users/{id}/role-mappings/realm", admin(func(w http.ResponseWriter, r *http.Request) {
		out := []roleRepresentation{}
		for _, name := range f.roleMapping[r.PathValue("id")] {
			out = append(out, roleRepresentation{ID: "role-" + name, Name: name})
		}
		writeJSON(w, http.StatusOK, out)
	}))

	mux.HandleFunc("DELETE /admin/realms/schoollibrary/users/{id}/role-mappings/realm", admin(func(w http.ResponseWriter, r *http.Request) {
		var roles []roleRepresentation
		_ = json.NewDecoder(r.Body).Decode(&roles)
		id := r.PathValue("id")
		kept := f.roleMapping[id][:0]
		for _, name := range f.roleMapping[id] {
			if !slices.ContainsFunc(roles, func(role roleRepresentation) bool { return role.Name == name }) {
				kept = append(kept, name)
			}
		}
		f.roleMapping[id] = kept
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("PUT /admin/realms/schoollibrary/users/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		u, ok := f.users[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		f.lastPatch = patch
		if enabled, ok := patch["enabled"].(bool); ok {
			u.Enabled = enabled
		}
		f.users[u.ID] = u
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("POST /admin/realms/schoollibrary/users/{id}/logout", admin(func(w http.ResponseWriter, r *http.Request) {
		f.logouts = append(f.logouts, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("PUT /admin/realms/schoollibrary/users/{id}/send-verify-email", admin(func(w http.ResponseWriter, r *http.Request) {
		f.verifyMails = append(f.verifyMails, r.PathValue("id"))
		f.lifespans = append(f.lifespans, r.URL.Query().Get("lifespan"))
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("PUT /admin/realms/schoollibrary/users/{id}/execute-actions-email", admin(func(w http.ResponseWriter, r *http.Request) {
		var actions []string
		_ = json.NewDecoder(r.Body).Decode(&actions)
		f.actions[r.PathValue("id")] = actions
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("PUT /admin/realms/schoollibrary/users/{id}/reset-password", admin(func(w http.ResponseWriter, r *http.Request) {
		if f.failReset {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, ok := f.users[r.PathValue("id")]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	mux.HandleFunc("DELETE /admin/realms/schoollibrary/users/{id}", admin(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.users[r.PathValue("id")]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(f.users, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	}))

	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeKeycloak) {
	t.Helper()
	fake := newFakeKeycloak()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c := New(Config{
		ServerURL:            srv.URL,
		Realm:                "schoollibrary",
		AdminClientID:        "admin-cli",
		AdminUsername:        "admin",
		AdminPassword:        "admin",
		TokenClientID:        "library-app",
		Timeout:              2 * time.Second,
		VerificationRequired: true,
		VerificationLifespan: 24 * time.Hour,
	}, nil)
	return c, fake
}

func TestClient_RegistrationCalls(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	registered, err := c.IsEmailRegistered(ctx, "max@schule.de")
	require.NoError(t, err)
	assert.False(t, registered)

	id, err := c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", identity.Attributes{"studentId": {"S-1"}})
	require.NoError(t, err)
	assert.Equal(t, "kc-max@schule.de", id)

	stored := fake.users[id]
	assert.False(t, stored.EmailVerified)
	assert.True(t, stored.Enabled)
	assert.Equal(t, []string{"S-1"}, stored.Attributes["studentId"])
	require.Len(t, stored.Credentials, 1)
	assert.False(t, stored.Credentials[0].Temporary)

	registered, err = c.IsEmailRegistered(ctx, "max@schule.de")
	require.NoError(t, err)
	assert.True(t, registered)

	require.NoError(t, c.AssignRole(ctx, id, "STUDENT"))
	assert.Equal(t, []string{"STUDENT"}, fake.roleMapping[id])

	require.NoError(t, c.SendVerificationEmail(ctx, id))
	assert.Equal(t, []string{id}, fake.verifyMails)
	assert.Equal(t, []string{"86400"}, fake.lifespans)

	// the admin token is fetched once and reused
	assert.Equal(t, 1, fake.adminTokens)
}

func TestClient_CreateUserConflictIsProviderError(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", nil)
	require.NoError(t, err)

	_, err = c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", nil)
	assert.Equal(t, apperror.CodeProvider, apperror.CodeOf(err))
	assert.ErrorContains(t, err, "409")
}

func TestClient_AssignUnknownRole(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.AssignRole(context.Background(), "kc-1", "JANITOR")
	assert.Equal(t, apperror.CodeProvider, apperror.CodeOf(err))
}

func TestClient_ReplaceRole(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateUser(ctx, "erika@schule.de", "Secret1!", "Erika", "Muster", nil)
	require.NoError(t, err)
	fake.roleMapping[id] = []string{"offline_access", "ADMIN", "TEACHER"}

	require.NoError(t, c.ReplaceRole(ctx, id, "STUDENT"))
	assert.Equal(t, []string{"offline_access", "STUDENT"}, fake.roleMapping[id])

	// repeating leaves the mapping as it is
	require.NoError(t, c.ReplaceRole(ctx, id, "STUDENT"))
	assert.Equal(t, []string{"offline_access", "STUDENT"}, fake.roleMapping[id])

	// an unknown role fails before any mapping is removed
	err = c.ReplaceRole(ctx, id, "JANITOR")
	assert.Equal(t, apperror.CodeProvider, apperror.CodeOf(err))
	assert.Equal(t, []string{"offline_access", "STUDENT"}, fake.roleMapping[id])
}

func TestClient_SetUserEnabled(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", nil)
	require.NoError(t, err)

	require.NoError(t, c.SetUserEnabled(ctx, id, false))
	assert.False(t, fake.users[id].Enabled)
	// only the flag is sent so the rest of the account is untouched
	assert.Equal(t, map[string]any{"enabled": false}, fake.lastPatch)
	assert.Equal(t, []string{id}, fake.logouts)

	require.NoError(t, c.SetUserEnabled(ctx, id, true))
	assert.True(t, fake.users[id].Enabled)
	assert.Len(t, fake.logouts, 1)

	err = c.SetUserEnabled(ctx, "kc-missing", false)
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}

func TestClient_Authenticate(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	res, err := c.AuthenticateWithCredentials(ctx, "max@schule.de", "Secret1!")
	require.NoError(t, err)
	assert.Equal(t, "user-access", res.AccessToken)
	assert.Equal(t, "user-refresh", res.RefreshToken)
	assert.Equal(t, int64(300), res.ExpiresIn)
	assert.Equal(t, int64(1800), res.RefreshExpiresIn)
	assert.Equal(t, "Bearer", res.TokenType)

	_, err = c.AuthenticateWithCredentials(ctx, "max@schule.de", "wrong")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestClient_RefreshToken(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	res, err := c.RefreshToken(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "user-access", res.AccessToken)

	_, err = c.RefreshToken(ctx, "expired")
	assert.ErrorIs(t, err, identity.ErrInvalidRefreshToken)

	_, err = c.RefreshToken(ctx, "boom")
	assert.Equal(t, apperror.CodeProvider, apperror.CodeOf(err))
}

func TestClient_PasswordReset(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SendPasswordResetEmail(ctx, "ghost@schule.de"))

	id, err := c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", nil)
	require.NoError(t, err)

	require.NoError(t, c.SendPasswordResetEmail(ctx, "max@schule.de"))
	assert.Equal(t, []string{"UPDATE_PASSWORD"}, fake.actions[id])

	require.NoError(t, c.ResetUserPassword(ctx, id, "NewSecret1!"))

	err = c.ResetUserPassword(ctx, "kc-missing", "NewSecret1!")
	assert.ErrorIs(t, err, identity.ErrUserNotFound)

	fake.failReset = true
	err = c.ResetUserPassword(ctx, id, "NewSecret1!")
	assert.Equal(t, apperror.CodePasswordReset, apperror.CodeOf(err))
}

func TestClient_DeleteUserIsIdempotent(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	id, err := c.CreateUser(ctx, "max@schule.de", "Secret1!", "Max", "Mustermann", nil)
	require.NoError(t, err)

	require.NoError(t, c.DeleteUser(ctx, id))
	require.NoError(t, c.DeleteUser(ctx, id))
}

func TestConfigURLs(t *testing.T) {
	cfg := Config{ServerURL: "http://kc:8080/", Realm: "school library"}
	assert.Equal(t, "http://kc:8080/realms/school%20library/protocol/openid-connect/token", cfg.tokenURL(cfg.Realm))
	assert.Equal(t, "http://kc:8080/admin/realms/school%20library", cfg.adminURL())
}
