package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/session"
)

type memStore struct {
	values map[string]map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]map[string]string{}}
}

func (s *memStore) WriteSessionValue(scope string, key string, value string) error {
	if s.values[scope] == nil {
		s.values[scope] = map[string]string{}
	}
	s.values[scope][key] = value
	return nil
}

func (s *memStore) ReadSessionValue(scope string, key string) (error, *string) {
	value, ok := s.values[scope][key]
	if !ok {
		return nil, nil
	}
	return nil, &value
}

func (s *memStore) ClearSession(scope string) error {
	delete(s.values, scope)
	return nil
}

func TestLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("Expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Could not decode request body: %v", err)
		}
		if payload["email"] != "jane@example.com" {
			t.Errorf("Expected email in payload, got %v", payload)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Credentials{
			Message: "Login successful",
			Token:   "tok-123",
			User:    User{Id: "u-1", Name: "Jane Doe", Email: "jane@example.com"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, newMemStore(), session.LocalScope)
	creds, err := client.Login("jane@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if creds.Token != "tok-123" {
		t.Errorf("Expected token tok-123, got %s", creds.Token)
	}
	if creds.User.Name != "Jane Doe" {
		t.Errorf("Expected user Jane Doe, got %s", creds.User.Name)
	}
}

func TestSignupSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/signup" {
			t.Errorf("Expected path /auth/signup, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Credentials{
			Message: "Signup successful",
			Token:   "tok-456",
			User:    User{Id: "u-2", Name: "New User", Email: "new@example.com"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, newMemStore(), session.LocalScope)
	creds, err := client.Signup("New User", "new@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if creds.User.Id != "u-2" {
		t.Errorf("Expected user id u-2, got %s", creds.User.Id)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer server.Close()

	store := newMemStore()
	client := NewClient(server.URL, store, session.LocalScope)
	creds, err := client.Login("jane@example.com", "wrong")
	if creds != nil {
		t.Error("Expected no credentials on rejection")
	}

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthError, got %T", err)
	}
	if authErr.Kind != ServerRejected {
		t.Errorf("Expected ServerRejected, got %v", authErr.Kind)
	}
	if authErr.Message != "Invalid credentials" {
		t.Errorf("Expected backend message, got %q", authErr.Message)
	}

	// A rejected login leaves the cached session untouched
	if len(store.values[session.LocalScope]) != 0 {
		t.Error("Rejected login must not write session state")
	}
}

func TestRejectionWithoutMessageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, newMemStore(), session.LocalScope)
	_, err := client.Login("jane@example.com", "hunter2")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthError, got %T", err)
	}
	if authErr.Kind != ServerRejected {
		t.Errorf("Expected ServerRejected, got %v", authErr.Kind)
	}
	if authErr.Message != "request failed with status 500" {
		t.Errorf("Expected status fallback message, got %q", authErr.Message)
	}
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable on purpose

	client := NewClient(server.URL, newMemStore(), session.LocalScope)
	_, err := client.Login("jane@example.com", "hunter2")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthError, got %T", err)
	}
	if authErr.Kind != NetworkFailure {
		t.Errorf("Expected NetworkFailure, got %v", authErr.Kind)
	}
}

func TestMalformedResponseIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, newMemStore(), session.LocalScope)
	_, err := client.Login("jane@example.com", "hunter2")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Expected *AuthError, got %T", err)
	}
	if authErr.Kind != NetworkFailure {
		t.Errorf("Expected NetworkFailure for malformed body, got %v", authErr.Kind)
	}
}

func TestCachedAccessorsReadThroughStore(t *testing.T) {
	store := newMemStore()
	client := NewClient("http://localhost:0", store, session.LocalScope)

	if client.IsAuthenticated() {
		t.Error("Empty store should not report authenticated")
	}
	if client.Token() != "" {
		t.Errorf("Expected empty token, got %q", client.Token())
	}
	if client.CachedUser() != nil {
		t.Error("Expected no cached user")
	}

	// The session controller is the writer; simulate its persisted identity
	identity := domain.UserIdentity{Id: "u-1", Name: "Jane Doe", Email: "jane@example.com", Token: "tok-123"}
	raw, _ := json.Marshal(&identity)
	store.WriteSessionValue(session.LocalScope, "userData", string(raw))

	if !client.IsAuthenticated() {
		t.Error("Expected authenticated after identity was persisted")
	}
	if client.Token() != "tok-123" {
		t.Errorf("Expected token tok-123, got %q", client.Token())
	}
	user := client.CachedUser()
	if user == nil || user.Email != "jane@example.com" {
		t.Errorf("Expected cached user, got %+v", user)
	}
}

func TestCachedUserMalformedReturnsNil(t *testing.T) {
	store := newMemStore()
	store.WriteSessionValue(session.LocalScope, "userData", "{broken")

	client := NewClient("http://localhost:0", store, session.LocalScope)
	if client.CachedUser() != nil {
		t.Error("Malformed cached identity should read as nil")
	}
	if client.IsAuthenticated() {
		t.Error("Malformed cached identity should not report authenticated")
	}
}

func TestClientLogoutClearsScope(t *testing.T) {
	store := newMemStore()
	store.WriteSessionValue(session.LocalScope, "userData", `{"token":"tok-123"}`)

	client := NewClient("http://localhost:0", store, session.LocalScope)
	if err := client.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if client.IsAuthenticated() {
		t.Error("Expected unauthenticated after logout")
	}
}
