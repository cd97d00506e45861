package domain

import (
	"github.com/google/uuid"
	"time"
)

// ReasonKind tags why a post was put in the feed ("why you're seeing this").
// The ranking itself is external; only the explanation travels with the post.
type ReasonKind string

const (
	ReasonFollowing ReasonKind = "following"
	ReasonInterest  ReasonKind = "interest"
	ReasonCommunity ReasonKind = "community"
	ReasonTrending  ReasonKind = "trending"
)

type Post struct {
	Id           uuid.UUID
	Author       string
	Username     string
	TrustScore   int
	Content      string
	CreatedAt    time.Time
	Likes        int
	Comments     int
	Shares       int
	ReasonType   ReasonKind
	ReasonDetail string
}

type Community struct {
	Id              uuid.UUID
	Name            string
	Description     string
	Members         int
	Posts           int
	Category        string
	ModerationLevel string // "strict", "moderate", "relaxed"
	Joined          bool
	Verified        bool
	Private         bool
}

type Conversation struct {
	Id          uuid.UUID
	Participant string
	Username    string
	Online      bool
	LastMessage string
	UpdatedAt   time.Time
	UnreadCount int
	Encrypted   bool
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Sender         string
	Content        string
	CreatedAt      time.Time
	Read           bool
}

type Thread struct {
	Id         uuid.UUID
	Title      string
	Author     string
	TrustScore int
	Category   string
	Content    string
	CreatedAt  time.Time
	Replies    int
	Likes      int
	Pinned     bool
	Locked     bool
}

type Notification struct {
	Id        uuid.UUID
	Kind      string // "like", "comment", "follow", "community", "achievement"
	Actor     string
	Content   string
	CreatedAt time.Time
	Read      bool
}

type TrendingItem struct {
	Id       uuid.UUID
	Kind     string // "topic", "post", "community"
	Title    string
	Count    int
	Rising   bool
	Change   int
	Category string
}

type CallParticipant struct {
	Id       uuid.UUID
	Name     string
	Muted    bool
	VideoOff bool
}
