package session

import (
	"github.com/trustnet/trustnet/domain"
)

// AuthMode is the entry flow active before authentication completes.
type AuthMode uint

const (
	AuthModeNone AuthMode = iota
	AuthModeLogin
	AuthModeSignup
)

var authModeTags = map[AuthMode]string{
	AuthModeNone:   "none",
	AuthModeLogin:  "login",
	AuthModeSignup: "signup",
}

func (m AuthMode) String() string {
	if tag, ok := authModeTags[m]; ok {
		return tag
	}
	return authModeTags[AuthModeNone]
}

// ParseAuthMode maps a persisted tag back to its AuthMode. Unknown tags
// return AuthModeNone and ok == false.
func ParseAuthMode(tag string) (AuthMode, bool) {
	for mode, t := range authModeTags {
		if t == tag {
			return mode, true
		}
	}
	return AuthModeNone, false
}

// State is the single durable record of gating and navigation state.
// It is mutated only through Controller transitions.
type State struct {
	HasStarted    bool
	AuthMode      AuthMode
	Authenticated bool
	ActiveView    domain.ViewID
	CurrentUser   *domain.UserIdentity
}

// DefaultState is the state of a fresh client before any interaction.
func DefaultState() State {
	return State{
		HasStarted:    false,
		AuthMode:      AuthModeNone,
		Authenticated: false,
		ActiveView:    domain.FeedView,
		CurrentUser:   nil,
	}
}

// Screen is the top-level screen the shell must render. It is a pure
// function of State, never stored.
type Screen uint

const (
	LandingScreen Screen = iota
	LoginScreen
	OnboardingScreen
	AppScreen
)

func (s Screen) String() string {
	switch s {
	case LandingScreen:
		return "landing"
	case LoginScreen:
		return "login"
	case OnboardingScreen:
		return "onboarding"
	default:
		return "app"
	}
}

// ScreenFor derives the visible screen from the gating state.
func ScreenFor(s State) Screen {
	if !s.HasStarted {
		return LandingScreen
	}
	if s.AuthMode == AuthModeLogin && !s.Authenticated {
		return LoginScreen
	}
	if !s.Authenticated {
		return OnboardingScreen
	}
	return AppScreen
}
