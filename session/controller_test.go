package session

import (
	"errors"
	"testing"

	"github.com/trustnet/trustnet/domain"
)

// memStore is an in-memory Store for controller tests.
type memStore struct {
	values   map[string]map[string]string
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{values: map[string]map[string]string{}}
}

func (s *memStore) WriteSessionValue(scope string, key string, value string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
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

func testIdentity() domain.UserIdentity {
	return domain.UserIdentity{
		Id:    "u-1",
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Token: "tok-1",
	}
}

func TestFreshControllerDefaults(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)

	state := c.State()
	if state.HasStarted {
		t.Error("Fresh session should not have started")
	}
	if state.Authenticated {
		t.Error("Fresh session should not be authenticated")
	}
	if state.AuthMode != AuthModeNone {
		t.Errorf("Expected AuthModeNone, got %v", state.AuthMode)
	}
	if state.ActiveView != domain.FeedView {
		t.Errorf("Expected default view feed, got %s", state.ActiveView)
	}
	if state.CurrentUser != nil {
		t.Error("Fresh session should have no user")
	}
	if c.Screen() != LandingScreen {
		t.Errorf("Expected landing screen, got %s", c.Screen())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)

	if err := c.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Second Start failed: %v", err)
	}

	if !c.State().HasStarted {
		t.Error("Expected HasStarted after Start")
	}
	if c.Screen() != OnboardingScreen {
		t.Errorf("Expected onboarding after start, got %s", c.Screen())
	}
}

func TestChooseLoginAndBack(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()

	if err := c.ChooseLogin(); err != nil {
		t.Fatalf("ChooseLogin failed: %v", err)
	}
	if c.Screen() != LoginScreen {
		t.Errorf("Expected login screen, got %s", c.Screen())
	}

	if err := c.ChooseSignup(); err != nil {
		t.Fatalf("ChooseSignup failed: %v", err)
	}
	if c.Screen() != OnboardingScreen {
		t.Errorf("Expected onboarding screen, got %s", c.Screen())
	}
}

func TestChooseLoginIgnoredWhenAuthenticated(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())

	if err := c.ChooseLogin(); err != nil {
		t.Fatalf("ChooseLogin failed: %v", err)
	}
	if c.State().AuthMode != AuthModeNone {
		t.Error("ChooseLogin should be a no-op while authenticated")
	}
	if c.Screen() != AppScreen {
		t.Errorf("Expected app screen, got %s", c.Screen())
	}
}

func TestCompleteAuthentication(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()
	c.ChooseLogin()

	if err := c.CompleteAuthentication(testIdentity()); err != nil {
		t.Fatalf("CompleteAuthentication failed: %v", err)
	}

	state := c.State()
	if !state.Authenticated {
		t.Error("Expected authenticated state")
	}
	if state.AuthMode != AuthModeNone {
		t.Error("Auth mode should reset after authentication")
	}
	if state.CurrentUser == nil || state.CurrentUser.Name != "Jane Doe" {
		t.Errorf("Expected current user Jane Doe, got %+v", state.CurrentUser)
	}
	if c.Screen() != AppScreen {
		t.Errorf("Expected app screen, got %s", c.Screen())
	}
}

func TestNavigate(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())

	if err := c.Navigate(domain.CommunitiesView); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if c.State().ActiveView != domain.CommunitiesView {
		t.Errorf("Expected communities view, got %s", c.State().ActiveView)
	}

	if err := c.Navigate(domain.TrendingView); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if c.State().ActiveView != domain.TrendingView {
		t.Errorf("Expected trending view, got %s", c.State().ActiveView)
	}
}

func TestNavigateIgnoredWhenUnauthenticated(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()

	if err := c.Navigate(domain.SettingsView); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if c.State().ActiveView != domain.FeedView {
		t.Error("Navigate should be a no-op before authentication")
	}
}

func TestNavigateIgnoresUnknownView(t *testing.T) {
	c := NewController(newMemStore(), LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.ForumsView)

	if err := c.Navigate(domain.ViewID(99)); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if c.State().ActiveView != domain.ForumsView {
		t.Error("Unknown view should not change the active view")
	}
}

func TestLogoutRemovesPersistedKeys(t *testing.T) {
	store := newMemStore()
	c := NewController(store, LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.MessagesView)

	if len(store.values[LocalScope]) == 0 {
		t.Fatal("Expected persisted keys before logout")
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, ok := store.values[LocalScope]; ok {
		t.Error("Logout should remove the persisted keys, not overwrite them")
	}

	state := c.State()
	if state.HasStarted || state.Authenticated || state.CurrentUser != nil {
		t.Errorf("Expected default state after logout, got %+v", state)
	}
	if c.Screen() != LandingScreen {
		t.Errorf("Expected landing after logout, got %s", c.Screen())
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	store := newMemStore()

	c := NewController(store, LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.PrivacyView)

	// Simulate a fresh client reconnecting against the same store
	restored := NewController(store, LocalScope)

	state := restored.State()
	if !state.HasStarted {
		t.Error("Restored session should have started")
	}
	if !state.Authenticated {
		t.Error("Restored session should be authenticated")
	}
	if state.ActiveView != domain.PrivacyView {
		t.Errorf("Expected privacy view restored, got %s", state.ActiveView)
	}
	if state.CurrentUser == nil || state.CurrentUser.Email != "jane@example.com" {
		t.Errorf("Expected restored user, got %+v", state.CurrentUser)
	}
	if restored.Screen() != AppScreen {
		t.Errorf("Expected app screen restored, got %s", restored.Screen())
	}
}

func TestRestoreScopesAreIsolated(t *testing.T) {
	store := newMemStore()

	c1 := NewController(store, "scope-a")
	c1.Start()
	c1.CompleteAuthentication(testIdentity())

	c2 := NewController(store, "scope-b")
	if c2.State().HasStarted || c2.State().Authenticated {
		t.Error("Session state must not leak across scopes")
	}
}

func TestRestoreMalformedFieldDegradesIndividually(t *testing.T) {
	store := newMemStore()

	c := NewController(store, LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.SearchView)

	// Corrupt a single persisted field
	store.values[LocalScope]["userData"] = "{not json"

	restored := NewController(store, LocalScope)
	state := restored.State()

	if state.CurrentUser != nil {
		t.Error("Malformed userData should degrade to nil")
	}
	if !state.HasStarted {
		t.Error("Sibling fields must survive a malformed field")
	}
	if state.ActiveView != domain.SearchView {
		t.Errorf("Expected search view to survive, got %s", state.ActiveView)
	}
	// Authenticated without an identity cannot hold
	if state.Authenticated {
		t.Error("Authenticated flag should drop when the identity is gone")
	}
	if restored.Screen() == AppScreen {
		t.Error("Should not land in the app shell without a user")
	}
}

func TestRestoreUnknownViewTagFallsBack(t *testing.T) {
	store := newMemStore()

	c := NewController(store, LocalScope)
	c.Start()
	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.VideoView)

	store.values[LocalScope]["activeView"] = `"holodeck"`

	restored := NewController(store, LocalScope)
	if restored.State().ActiveView != domain.FeedView {
		t.Errorf("Unknown view tag should fall back to feed, got %s", restored.State().ActiveView)
	}
	if !restored.State().Authenticated {
		t.Error("Sibling fields must survive an unknown view tag")
	}
}

func TestPersistFailureSurfaces(t *testing.T) {
	store := newMemStore()
	c := NewController(store, LocalScope)

	store.writeErr = errors.New("disk full")
	if err := c.Start(); err == nil {
		t.Error("Expected persist error to surface from Start")
	}
}

// Scenario: a new user lands, signs up, browses, disconnects and comes back.
func TestScenarioSignupBrowseReconnect(t *testing.T) {
	store := newMemStore()

	c := NewController(store, "pk-hash-1")
	if c.Screen() != LandingScreen {
		t.Fatalf("Expected landing, got %s", c.Screen())
	}

	c.Start()
	if c.Screen() != OnboardingScreen {
		t.Fatalf("Expected onboarding, got %s", c.Screen())
	}

	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.CommunitiesView)
	c.Navigate(domain.NotificationsView)

	back := NewController(store, "pk-hash-1")
	if back.Screen() != AppScreen {
		t.Errorf("Expected reconnect straight into the app, got %s", back.Screen())
	}
	if back.State().ActiveView != domain.NotificationsView {
		t.Errorf("Expected last view restored, got %s", back.State().ActiveView)
	}
}

// Scenario: a returning user picks login from landing, then logs out again.
func TestScenarioLoginThenLogout(t *testing.T) {
	store := newMemStore()
	c := NewController(store, LocalScope)

	c.Start()
	c.ChooseLogin()
	if c.Screen() != LoginScreen {
		t.Fatalf("Expected login screen, got %s", c.Screen())
	}

	c.CompleteAuthentication(testIdentity())
	c.Navigate(domain.ProfileView)
	c.Logout()

	if c.Screen() != LandingScreen {
		t.Errorf("Expected landing after logout, got %s", c.Screen())
	}

	fresh := NewController(store, LocalScope)
	if fresh.Screen() != LandingScreen {
		t.Errorf("Nothing should be restored after logout, got %s", fresh.Screen())
	}
}

func TestParseAuthMode(t *testing.T) {
	tests := []struct {
		tag      string
		expected AuthMode
		ok       bool
	}{
		{"none", AuthModeNone, true},
		{"login", AuthModeLogin, true},
		{"signup", AuthModeSignup, true},
		{"register", AuthModeNone, false},
		{"", AuthModeNone, false},
	}

	for _, tt := range tests {
		mode, ok := ParseAuthMode(tt.tag)
		if mode != tt.expected || ok != tt.ok {
			t.Errorf("ParseAuthMode(%q) = (%v, %v), expected (%v, %v)",
				tt.tag, mode, ok, tt.expected, tt.ok)
		}
	}
}
