package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/trustnet/trustnet/domain"
)

// SeedSampleData populates the content tables with the demo data the views
// render. It is a no-op when posts already exist, so a reseed never
// duplicates rows.
func (db *DB) SeedSampleData() error {
	var count int
	if err := db.db.QueryRow(sqlCountPosts).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	return db.wrapTransaction(func(tx *sql.Tx) error {
		posts := []struct {
			author, username string
			trustScore       int
			content          string
			age              time.Duration
			likes, comments  int
			shares           int
			reason           domain.ReasonKind
			reasonDetail     string
		}{
			{"Sarah Chen", "sarahchen", 94,
				"Just finished implementing end-to-end encryption for our team's messaging system. The peace of mind knowing our conversations are truly private is incredible.",
				2 * time.Hour, 234, 45, 12, domain.ReasonFollowing, "You follow Sarah Chen"},
			{"Marcus Rodriguez", "marcusr", 88,
				"Hosting a community discussion on ethical AI development tonight at 7 PM. Would love to hear different perspectives on building AI systems that respect user privacy.",
				4 * time.Hour, 567, 89, 34, domain.ReasonInterest, "Based on your interest in Technology Ethics"},
			{"Priya Patel", "priyap", 96,
				"Amazing sunrise hike this morning! Sometimes disconnecting from screens and reconnecting with nature is the best way to recharge.",
				6 * time.Hour, 892, 67, 23, domain.ReasonCommunity, "Popular in Mindful Living"},
			{"Alex Kim", "alexk", 91,
				"New write-up: [what decentralized identity actually solves](https://trustnet.example/posts/did) and where it still falls short.",
				9 * time.Hour, 445, 102, 56, domain.ReasonTrending, "Trending in your network"},
		}
		for _, p := range posts {
			if _, err := tx.Exec(sqlInsertPost, uuid.New(), p.author, p.username, p.trustScore,
				p.content, now.Add(-p.age), p.likes, p.comments, p.shares, string(p.reason), p.reasonDetail); err != nil {
				return err
			}
		}

		communities := []struct {
			name, description, category string
			members, posts              int
			moderation                  string
			joined, verified, private   bool
		}{
			{"Ethical Tech", "Discussing technology that respects privacy, autonomy, and human values", "Technology", 12400, 3421, "strict", true, true, false},
			{"Mindful Living", "Balance, wellbeing and healthy digital habits", "Lifestyle", 8900, 2100, "moderate", true, false, false},
			{"Open Source Builders", "Show and discuss what you are building in the open", "Technology", 15600, 5230, "moderate", false, true, false},
			{"Privacy Advocates", "News and practice of personal data protection", "Society", 22000, 7804, "strict", false, true, true},
			{"Urban Gardeners", "Growing food and flowers in small spaces", "Hobby", 4300, 980, "relaxed", false, false, false},
		}
		for _, c := range communities {
			if _, err := tx.Exec(sqlInsertCommunity, uuid.New(), c.name, c.description, c.members,
				c.posts, c.category, c.moderation, c.joined, c.verified, c.private); err != nil {
				return err
			}
		}

		conversations := []struct {
			participant, username string
			online                bool
			lastMessage           string
			age                   time.Duration
			unread                int
			messages              []struct {
				sender, content string
				age             time.Duration
				read            bool
			}
		}{
			{"Sarah Chen", "sarahchen", true, "Thanks for sharing that article!", 5 * time.Minute, 2,
				[]struct {
					sender, content string
					age             time.Duration
					read            bool
				}{
					{"you", "Have you read the piece on privacy-by-design?", 20 * time.Minute, true},
					{"sarahchen", "Just did, it's great", 7 * time.Minute, false},
					{"sarahchen", "Thanks for sharing that article!", 5 * time.Minute, false},
				}},
			{"Marcus Rodriguez", "marcusr", false, "See you at the community event!", 2 * time.Hour, 0,
				[]struct {
					sender, content string
					age             time.Duration
					read            bool
				}{
					{"marcusr", "See you at the community event!", 2 * time.Hour, true},
				}},
			{"Priya Patel", "priyap", true, "The hike photos are up", 26 * time.Hour, 1,
				[]struct {
					sender, content string
					age             time.Duration
					read            bool
				}{
					{"priyap", "The hike photos are up", 26 * time.Hour, false},
				}},
		}
		for _, c := range conversations {
			convId := uuid.New()
			if _, err := tx.Exec(sqlInsertConversation, convId, c.participant, c.username,
				c.online, c.lastMessage, now.Add(-c.age), c.unread, true); err != nil {
				return err
			}
			for _, m := range c.messages {
				if _, err := tx.Exec(sqlInsertMessage, uuid.New(), convId, m.sender,
					m.content, now.Add(-m.age), m.read); err != nil {
					return err
				}
			}
		}

		threads := []struct {
			title, author    string
			trustScore       int
			category         string
			content          string
			age              time.Duration
			replies, likes   int
			pinned, locked   bool
		}{
			{"Best practices for implementing privacy-by-design in web applications", "Sarah Chen", 94, "Privacy",
				"I've been working on integrating privacy-by-design principles into our application architecture...",
				2 * time.Hour, 34, 156, true, false},
			{"Community guidelines discussion: moderation transparency", "Marcus Rodriguez", 88, "Meta",
				"How much of the moderation log should be public?", 8 * time.Hour, 78, 203, false, false},
			{"Show your desk setup (2026 edition)", "Alex Kim", 91, "Off-topic",
				"Post a photo or a description of your current workspace.", 30 * time.Hour, 244, 512, false, false},
			{"ARCHIVED: old federation proposal", "Priya Patel", 96, "Technology",
				"Superseded by the newer draft, kept for reference.", 200 * time.Hour, 19, 44, false, true},
		}
		for _, t := range threads {
			if _, err := tx.Exec(sqlInsertThread, uuid.New(), t.title, t.author, t.trustScore,
				t.category, t.content, now.Add(-t.age), t.replies, t.likes, t.pinned, t.locked); err != nil {
				return err
			}
		}

		notifications := []struct {
			kind, actor, content string
			age                  time.Duration
			read                 bool
		}{
			{"like", "Sarah Chen", "liked your post about privacy-by-design", 5 * time.Minute, false},
			{"comment", "Marcus Rodriguez", "commented on your discussion: \"This is exactly what we need!\"", 30 * time.Minute, false},
			{"follow", "Priya Patel", "started following you", 1 * time.Hour, false},
			{"community", "Ethical Tech", "your post was featured in Ethical Tech", 3 * time.Hour, false},
			{"achievement", "TrustNet", "your trust score reached 90", 5 * time.Hour, false},
			{"like", "Alex Kim", "liked your comment", 8 * time.Hour, false},
			{"comment", "Sarah Chen", "replied to your thread", 12 * time.Hour, false},
			{"follow", "Jamie Fox", "started following you", 24 * time.Hour, true},
		}
		for _, n := range notifications {
			if _, err := tx.Exec(sqlInsertNotification, uuid.New(), n.kind, n.actor,
				n.content, now.Add(-n.age), n.read); err != nil {
				return err
			}
		}

		trending := []struct {
			kind, title string
			count       int
			rising      bool
			change      int
			category    string
		}{
			{"topic", "privacy-by-design", 1247, true, 34, "Technology"},
			{"post", "The future of ethical AI development", 892, true, 21, "Technology"},
			{"community", "Privacy Advocates", 650, false, 0, "Society"},
			{"topic", "digital-minimalism", 534, true, 12, "Lifestyle"},
			{"topic", "open-source-funding", 421, false, 0, "Technology"},
		}
		for _, t := range trending {
			if _, err := tx.Exec(sqlInsertTrending, uuid.New(), t.kind, t.title,
				t.count, t.rising, t.change, t.category); err != nil {
				return err
			}
		}

		participants := []struct {
			name     string
			muted    bool
			videoOff bool
		}{
			{"Sarah Chen", false, false},
			{"Marcus Rodriguez", true, false},
			{"Priya Patel", false, true},
			{"Alex Kim", true, true},
		}
		for _, p := range participants {
			if _, err := tx.Exec(sqlInsertParticipant, uuid.New(), p.name, p.muted, p.videoOff); err != nil {
				return err
			}
		}

		return nil
	})
}
