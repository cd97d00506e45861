package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/session"
)

// ErrorKind separates transport failures from backend rejections.
type ErrorKind uint

const (
	NetworkFailure ErrorKind = iota
	ServerRejected
)

func (k ErrorKind) String() string {
	if k == ServerRejected {
		return "server rejected"
	}
	return "network failure"
}

// AuthError is the single typed failure of signup/login calls.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// User is the identity fragment the backend returns.
type User struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is a successful signup/login response.
type Credentials struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type signupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client issues signup/login requests against the auth backend. It never
// writes session state itself: the session controller is the only writer
// of durable identity, and the cache accessors below read through the
// controller's store.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   session.Store
	scope   string
}

// NewClient builds a client for the given backend base URL, reading cached
// credentials through the shared session store.
func NewClient(baseURL string, store session.Store, scope string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		store:   store,
		scope:   scope,
	}
}

// Signup registers a new user and returns the issued token and identity.
func (c *Client) Signup(name string, email string, password string) (*Credentials, error) {
	return c.post("/auth/signup", signupPayload{Name: name, Email: email, Password: password})
}

// Login authenticates an existing user.
func (c *Client) Login(email string, password string) (*Credentials, error) {
	return c.post("/auth/login", loginPayload{Email: email, Password: password})
}

func (c *Client) post(path string, payload interface{}) (*Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &AuthError{Kind: NetworkFailure, Message: err.Error()}
	}

	resp, err := c.httpc.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, &AuthError{Kind: NetworkFailure, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Kind: NetworkFailure, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var rejection struct {
			Message string `json:"message"`
		}
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if err := json.Unmarshal(raw, &rejection); err == nil && rejection.Message != "" {
			message = rejection.Message
		}
		return nil, &AuthError{Kind: ServerRejected, Message: message}
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, &AuthError{Kind: NetworkFailure, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return &creds, nil
}

// Token returns the cached bearer token, or "" when none is stored.
func (c *Client) Token() string {
	if user := c.CachedUser(); user != nil {
		return user.Token
	}
	return ""
}

// CachedUser reads the stored identity through the session store.
func (c *Client) CachedUser() *domain.UserIdentity {
	err, raw := c.store.ReadSessionValue(c.scope, "userData")
	if err != nil || raw == nil {
		return nil
	}
	var user *domain.UserIdentity
	if err := json.Unmarshal([]byte(*raw), &user); err != nil {
		return nil
	}
	return user
}

// IsAuthenticated reports whether a cached token is present.
func (c *Client) IsAuthenticated() bool {
	return c.Token() != ""
}

// Logout drops the cached credentials together with the rest of the
// session scope.
func (c *Client) Logout() error {
	return c.store.ClearSession(c.scope)
}
