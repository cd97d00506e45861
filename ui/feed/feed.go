package feed

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/util"
	"log"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	postStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(1)

	selectedPostStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
				Padding(0, 1).
				MarginBottom(1)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	trustStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN))

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY)).
			Italic(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Faint(true)
)

type Model struct {
	Posts    []domain.Post
	Selected int
	Liked    map[string]bool
	Width    int
	Height   int
}

func InitialModel(width, height int) Model {
	return Model{
		Posts:  []domain.Post{},
		Liked:  make(map[string]bool),
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadPosts()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postsLoadedMsg:
		m.Posts = msg.posts
		m.Selected = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if len(m.Posts) > 0 && m.Selected < len(m.Posts)-1 {
				m.Selected++
			}
		case "l":
			if len(m.Posts) == 0 {
				return m, nil
			}
			post := m.Posts[m.Selected]
			delta := 1
			if m.Liked[post.Id.String()] {
				delta = -1
			}
			m.Liked[post.Id.String()] = !m.Liked[post.Id.String()]
			m.Posts[m.Selected].Likes += delta
			return m, likePost(post.Id, delta)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("Feed (%d posts)", len(m.Posts))))
	s.WriteString("\n\n")

	if len(m.Posts) == 0 {
		s.WriteString(common.EmptyStyle.Render("Nothing here yet.\nFollow people and communities to fill your feed!"))
	} else {
		displayCount := min(len(m.Posts), 3)
		start := m.Selected
		if start > len(m.Posts)-displayCount {
			start = len(m.Posts) - displayCount
		}

		for i := start; i < start+displayCount; i++ {
			post := m.Posts[i]

			liked := ""
			if m.Liked[post.Id.String()] {
				liked = " ♥"
			}

			postContent := fmt.Sprintf("%s %s\n%s\n%s\n%s",
				authorStyle.Render(fmt.Sprintf("%s @%s", post.Author, post.Username)),
				trustStyle.Render(fmt.Sprintf("[trust %d]", post.TrustScore)),
				contentStyle.Render(util.MarkdownLinksToTerminal(truncate(post.Content, 160))),
				reasonStyle.Render("why you're seeing this: "+post.ReasonDetail),
				timeStyle.Render(fmt.Sprintf("%s • %d likes%s • %d comments • %d shares",
					formatTime(post.CreatedAt), post.Likes, liked, post.Comments, post.Shares)),
			)

			if i == m.Selected {
				s.WriteString(selectedPostStyle.Render(postContent))
			} else {
				s.WriteString(postStyle.Render(postContent))
			}
			s.WriteString("\n")
		}

		if len(m.Posts) > displayCount {
			s.WriteString(common.EmptyStyle.Render(fmt.Sprintf("... %d posts total", len(m.Posts))))
			s.WriteString("\n")
		}
	}

	return s.String()
}

// postsLoadedMsg is sent when posts are loaded
type postsLoadedMsg struct {
	posts []domain.Post
}

func loadPosts() tea.Cmd {
	return func() tea.Msg {
		database := db.GetDB()
		err, posts := database.ReadAllPosts()
		if err != nil {
			log.Printf("Failed to load posts: %v", err)
			return postsLoadedMsg{posts: []domain.Post{}}
		}

		if posts == nil {
			return postsLoadedMsg{posts: []domain.Post{}}
		}

		return postsLoadedMsg{posts: *posts}
	}
}

func likePost(id uuid.UUID, delta int) tea.Cmd {
	return func() tea.Msg {
		if err := db.GetDB().AddPostLikes(id, delta); err != nil {
			log.Printf("Failed to update likes: %v", err)
		}
		return nil
	}
}

func formatTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
