package common

import "github.com/trustnet/trustnet/domain"

// Messages flowing from the screens up to the app shell, which feeds them
// into the session controller. Screens never mutate session state directly.

// StartMsg is sent when the user leaves the landing page.
type StartMsg struct{}

// ChooseLoginMsg enters the login flow.
type ChooseLoginMsg struct{}

// ChooseSignupMsg enters the signup/onboarding flow.
type ChooseSignupMsg struct{}

// AuthSuccessMsg carries the identity of a completed signup or login.
type AuthSuccessMsg struct {
	Identity domain.UserIdentity
}

// AuthFailedMsg carries the display message of a failed auth attempt.
type AuthFailedMsg struct {
	Message string
}

// NavigateMsg requests a view switch inside the authenticated shell.
type NavigateMsg struct {
	View domain.ViewID
}

// LogoutMsg ends the session.
type LogoutMsg struct{}

// RefreshBadgesMsg asks the sidebar to reload its unread counters.
type RefreshBadgesMsg struct{}
