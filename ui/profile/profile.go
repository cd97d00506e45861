package profile

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_PURPLE)).
			Padding(1, 3).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	emailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Bold(true)
)

type Model struct {
	User       *domain.UserIdentity
	Posts      int
	Joined     int
	Width      int
	Height     int
}

func InitialModel(width, height int) Model {
	return Model{
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadStats()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.AuthSuccessMsg:
		identity := msg.Identity
		m.User = &identity
		return m, nil
	case statsLoadedMsg:
		m.Posts = msg.posts
		m.Joined = msg.joined
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Profile"))
	s.WriteString("\n\n")

	if m.User == nil {
		s.WriteString(common.EmptyStyle.Render("Not signed in."))
		return s.String()
	}

	var card strings.Builder
	card.WriteString(nameStyle.Render(m.User.Name))
	card.WriteString("\n")
	card.WriteString(emailStyle.Render(m.User.Email))
	card.WriteString("\n\n")
	card.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("member id:"), m.User.Id))
	card.WriteString(fmt.Sprintf("%s %s • %s %s",
		statStyle.Render(fmt.Sprintf("%d", m.Posts)), labelStyle.Render("posts in feed"),
		statStyle.Render(fmt.Sprintf("%d", m.Joined)), labelStyle.Render("communities joined")))

	s.WriteString(cardStyle.Render(card.String()))
	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("ctrl+x: log out"))
	return s.String()
}

type statsLoadedMsg struct {
	posts  int
	joined int
}

func loadStats() tea.Cmd {
	return func() tea.Msg {
		database := db.GetDB()

		posts := 0
		err, allPosts := database.ReadAllPosts()
		if err != nil {
			log.Printf("Failed to load posts: %v", err)
		} else if allPosts != nil {
			posts = len(*allPosts)
		}

		joined := 0
		err, communities := database.ReadCommunities()
		if err != nil {
			log.Printf("Failed to load communities: %v", err)
		} else if communities != nil {
			for _, c := range *communities {
				if c.Joined {
					joined++
				}
			}
		}

		return statsLoadedMsg{posts: posts, joined: joined}
	}
}
