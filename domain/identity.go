package domain

import "fmt"

// PrivacySettings are the preference flags collected during onboarding.
// Defaults are the most restrictive: nothing shared until switched on.
type PrivacySettings struct {
	PublicProfile    bool `json:"publicProfile"`
	ShowOnlineStatus bool `json:"showOnlineStatus"`
	AllowDiscovery   bool `json:"allowDiscovery"`
	PersonalizedFeed bool `json:"personalizedFeed"`
}

// UserIdentity is the authenticated user as returned by the auth backend,
// plus the bearer token and the onboarding privacy preferences.
type UserIdentity struct {
	Id              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Token           string           `json:"token"`
	PrivacySettings *PrivacySettings `json:"privacySettings,omitempty"`
}

func (u *UserIdentity) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tName: %s \n\tEmail: %s", u.Id, u.Name, u.Email)
}
