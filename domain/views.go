package domain

// ViewID identifies one of the fixed top-level screens of the authenticated
// app shell. The set is closed; anything unrecognized falls back to FeedView.
type ViewID uint

const (
	FeedView ViewID = iota
	CommunitiesView
	MessagesView
	VideoView
	ForumsView
	PrivacyView
	ProfileView
	NotificationsView
	SettingsView
	SearchView
	TrendingView
)

var viewTags = map[ViewID]string{
	FeedView:          "feed",
	CommunitiesView:   "communities",
	MessagesView:      "messages",
	VideoView:         "video",
	ForumsView:        "forums",
	PrivacyView:       "privacy",
	ProfileView:       "profile",
	NotificationsView: "notifications",
	SettingsView:      "settings",
	SearchView:        "search",
	TrendingView:      "trending",
}

// AllViews lists every view in sidebar order.
var AllViews = []ViewID{
	FeedView,
	CommunitiesView,
	MessagesView,
	VideoView,
	ForumsView,
	PrivacyView,
	ProfileView,
	NotificationsView,
	SettingsView,
	SearchView,
	TrendingView,
}

func (v ViewID) String() string {
	if tag, ok := viewTags[v]; ok {
		return tag
	}
	return viewTags[FeedView]
}

// Valid reports whether v is a member of the enumerated view set.
func (v ViewID) Valid() bool {
	_, ok := viewTags[v]
	return ok
}

// ParseView maps a view tag to its ViewID. Unknown tags return FeedView
// and ok == false.
func ParseView(tag string) (ViewID, bool) {
	for id, t := range viewTags {
		if t == tag {
			return id, true
		}
	}
	return FeedView, false
}

// NextView returns the view after v in sidebar order, wrapping around.
func NextView(v ViewID) ViewID {
	for i, id := range AllViews {
		if id == v {
			return AllViews[(i+1)%len(AllViews)]
		}
	}
	return FeedView
}

// PrevView returns the view before v in sidebar order, wrapping around.
func PrevView(v ViewID) ViewID {
	for i, id := range AllViews {
		if id == v {
			return AllViews[(i-1+len(AllViews))%len(AllViews)]
		}
	}
	return FeedView
}
