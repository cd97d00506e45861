package session

import (
	"encoding/json"
	"log"

	"github.com/trustnet/trustnet/domain"
)

// Persisted keys, one per State field. Removed entirely on logout.
const (
	keyHasStarted      = "hasStarted"
	keyAuthMode        = "authMode"
	keyIsAuthenticated = "isAuthenticated"
	keyActiveView      = "activeView"
	keyUserData        = "userData"
)

// LocalScope is the session scope of the locally-run client. SSH-served
// clients use their public key hash instead.
const LocalScope = "local"

// Store is the persisted string-keyed JSON key-value storage backing the
// controller. *db.DB satisfies it.
type Store interface {
	WriteSessionValue(scope string, key string, value string) error
	ReadSessionValue(scope string, key string) (error, *string)
	ClearSession(scope string) error
}

// Controller owns the session gating and navigation state. All mutation
// goes through its transition methods; every transition persists
// synchronously before returning.
type Controller struct {
	store Store
	scope string
	state State
}

// NewController restores the persisted session for the given scope, or
// starts from defaults when nothing was persisted.
func NewController(store Store, scope string) *Controller {
	c := &Controller{store: store, scope: scope, state: DefaultState()}
	c.restore()
	return c
}

// State returns a copy of the current session state.
func (c *Controller) State() State {
	return c.state
}

// Screen derives the currently visible top-level screen.
func (c *Controller) Screen() Screen {
	return ScreenFor(c.state)
}

// Start records that the user passed the landing page. No-op if already
// started.
func (c *Controller) Start() error {
	if c.state.HasStarted {
		return nil
	}
	c.state.HasStarted = true
	return c.persist()
}

// ChooseLogin enters the login flow. Only meaningful before authentication.
func (c *Controller) ChooseLogin() error {
	if c.state.Authenticated {
		return nil
	}
	c.state.AuthMode = AuthModeLogin
	return c.persist()
}

// ChooseSignup enters the signup/onboarding flow (also the way back from
// the login form).
func (c *Controller) ChooseSignup() error {
	if c.state.Authenticated {
		return nil
	}
	c.state.AuthMode = AuthModeSignup
	return c.persist()
}

// CompleteAuthentication installs the identity returned by a successful
// auth call. Idempotent: calling twice with the same identity is a
// last-write-wins overwrite.
func (c *Controller) CompleteAuthentication(identity domain.UserIdentity) error {
	c.state.Authenticated = true
	c.state.CurrentUser = &identity
	c.state.AuthMode = AuthModeNone
	return c.persist()
}

// Navigate switches the active view. Ignored while unauthenticated and for
// views outside the enumerated set; neither case changes state.
func (c *Controller) Navigate(view domain.ViewID) error {
	if !c.state.Authenticated {
		return nil
	}
	if !view.Valid() {
		log.Printf("Ignoring navigation to unknown view %d", view)
		return nil
	}
	c.state.ActiveView = view
	return c.persist()
}

// Logout resets the session to defaults and removes every persisted key
// (not an overwrite: the keys are gone afterwards).
func (c *Controller) Logout() error {
	c.state = DefaultState()
	return c.store.ClearSession(c.scope)
}

// persist writes all session fields, in field order, through the single
// serialize boundary.
func (c *Controller) persist() error {
	user := "null"
	if c.state.CurrentUser != nil {
		buf, err := json.Marshal(c.state.CurrentUser)
		if err != nil {
			return err
		}
		user = string(buf)
	}

	values := []struct {
		key   string
		value string
	}{
		{keyHasStarted, marshalBool(c.state.HasStarted)},
		{keyAuthMode, marshalString(c.state.AuthMode.String())},
		{keyIsAuthenticated, marshalBool(c.state.Authenticated)},
		{keyActiveView, marshalString(c.state.ActiveView.String())},
		{keyUserData, user},
	}
	for _, v := range values {
		if err := c.store.WriteSessionValue(c.scope, v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

// restore loads the persisted state field by field. A malformed field
// degrades to its default without touching sibling fields.
func (c *Controller) restore() {
	if raw := c.read(keyHasStarted); raw != nil {
		var v bool
		if err := json.Unmarshal([]byte(*raw), &v); err != nil {
			log.Printf("Malformed persisted %s, using default: %v", keyHasStarted, err)
		} else {
			c.state.HasStarted = v
		}
	}

	if raw := c.read(keyAuthMode); raw != nil {
		var tag string
		if err := json.Unmarshal([]byte(*raw), &tag); err != nil {
			log.Printf("Malformed persisted %s, using default: %v", keyAuthMode, err)
		} else if mode, ok := ParseAuthMode(tag); ok {
			c.state.AuthMode = mode
		}
	}

	if raw := c.read(keyIsAuthenticated); raw != nil {
		var v bool
		if err := json.Unmarshal([]byte(*raw), &v); err != nil {
			log.Printf("Malformed persisted %s, using default: %v", keyIsAuthenticated, err)
		} else {
			c.state.Authenticated = v
		}
	}

	if raw := c.read(keyActiveView); raw != nil {
		var tag string
		if err := json.Unmarshal([]byte(*raw), &tag); err != nil {
			log.Printf("Malformed persisted %s, using default: %v", keyActiveView, err)
		} else if view, ok := domain.ParseView(tag); ok {
			c.state.ActiveView = view
		}
	}

	if raw := c.read(keyUserData); raw != nil {
		var user *domain.UserIdentity
		if err := json.Unmarshal([]byte(*raw), &user); err != nil {
			log.Printf("Malformed persisted %s, using default: %v", keyUserData, err)
		} else {
			c.state.CurrentUser = user
		}
	}

	// Authenticated without an identity cannot hold; drop the flag rather
	// than render the app shell with no user.
	if c.state.Authenticated && c.state.CurrentUser == nil {
		c.state.Authenticated = false
	}
}

func (c *Controller) read(key string) *string {
	err, value := c.store.ReadSessionValue(c.scope, key)
	if err != nil {
		log.Printf("Could not read persisted %s: %v", key, err)
		return nil
	}
	return value
}

func marshalBool(v bool) string {
	buf, _ := json.Marshal(v)
	return string(buf)
}

func marshalString(v string) string {
	buf, _ := json.Marshal(v)
	return string(buf)
}
