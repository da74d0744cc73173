package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokenStore struct {
	token string
}

func (s *memoryTokenStore) Load() (string, error)   { return s.token, nil }
func (s *memoryTokenStore) Save(token string) error { s.token = token; return nil }
func (s *memoryTokenStore) Clear() error            { s.token = ""; return nil }

func backendStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] == "taken@x.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"msg":"User already exists"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"server-token"}`))
	})

	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"server-token"}`))
	})

	mux.HandleFunc("GET /api/auth", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-auth-token") != "server-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"Token is not valid"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":1,"name":"A","email":"a@x.com"}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRegisterFlow(t *testing.T) {
	server := backendStub(t)
	store := &memoryTokenStore{}

	c, err := New(server.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.Register(context.Background(), "A", "a@x.com", "secret1"))

	state := c.State()
	require.NotNil(t, state.IsAuthenticated)
	assert.True(t, *state.IsAuthenticated)
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "a@x.com", state.User.Email)
	assert.Equal(t, "server-token", store.token, "token must be persisted durably")
}

func TestRegisterRejected(t *testing.T) {
	server := backendStub(t)
	store := &memoryTokenStore{token: "stale"}

	c, err := New(server.URL, store)
	require.NoError(t, err)

	err = c.Register(context.Background(), "A", "taken@x.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User already exists")

	state := c.State()
	require.NotNil(t, state.IsAuthenticated)
	assert.False(t, *state.IsAuthenticated)
	assert.Empty(t, store.token, "durable token must be cleared")
}

func TestLoadUserWithValidToken(t *testing.T) {
	server := backendStub(t)
	store := &memoryTokenStore{token: "server-token"}

	c, err := New(server.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.LoadUser(context.Background()))

	state := c.State()
	require.NotNil(t, state.IsAuthenticated)
	assert.True(t, *state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "A", state.User.Name)
}

func TestLoadUserWithRejectedToken(t *testing.T) {
	server := backendStub(t)
	store := &memoryTokenStore{token: "expired-token"}

	c, err := New(server.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.LoadUser(context.Background()))

	state := c.State()
	require.NotNil(t, state.IsAuthenticated)
	assert.False(t, *state.IsAuthenticated)
	assert.Empty(t, state.Token)
	assert.Empty(t, store.token)
}

func TestLoadUserWithoutToken(t *testing.T) {
	server := backendStub(t)
	store := &memoryTokenStore{}

	c, err := New(server.URL, store)
	require.NoError(t, err)

	require.NoError(t, c.LoadUser(context.Background()))

	state := c.State()
	require.NotNil(t, state.IsAuthenticated)
	assert.False(t, *state.IsAuthenticated)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/token"
	store, err := NewFileTokenStore(path)
	require.NoError(t, err)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Save("abc"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
