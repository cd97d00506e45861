package communities

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	joinedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN)).
			Bold(true)

	verifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE))

	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Padding(0, 1).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(1)
)

type Model struct {
	Communities []domain.Community
	Selected    int
	Width       int
	Height      int
}

func InitialModel(width, height int) Model {
	return Model{
		Communities: []domain.Community{},
		Width:       width,
		Height:      height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadCommunities()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case communitiesLoadedMsg:
		m.Communities = msg.communities
		m.Selected = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if len(m.Communities) > 0 && m.Selected < len(m.Communities)-1 {
				m.Selected++
			}
		case "enter", " ":
			if len(m.Communities) == 0 {
				return m, nil
			}
			c := &m.Communities[m.Selected]
			c.Joined = !c.Joined
			if c.Joined {
				c.Members++
			} else {
				c.Members--
			}
			return m, toggleJoin(c.Id, c.Joined)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("Communities (%d)", len(m.Communities))))
	s.WriteString("\n\n")

	if len(m.Communities) == 0 {
		s.WriteString(common.EmptyStyle.Render("No communities found."))
		return s.String()
	}

	displayCount := min(len(m.Communities), 4)
	start := m.Selected
	if start > len(m.Communities)-displayCount {
		start = len(m.Communities) - displayCount
	}

	for i := start; i < start+displayCount; i++ {
		c := m.Communities[i]

		badge := ""
		if c.Verified {
			badge = verifiedStyle.Render(" ✓")
		}
		if c.Private {
			badge += metaStyle.Render(" (private)")
		}

		membership := metaStyle.Render("[press enter to join]")
		if c.Joined {
			membership = joinedStyle.Render("[joined]")
		}

		item := fmt.Sprintf("%s%s %s\n%s\n%s",
			nameStyle.Render(c.Name),
			badge,
			membership,
			descStyle.Render(c.Description),
			metaStyle.Render(fmt.Sprintf("%d members • %d posts • %s • moderation: %s",
				c.Members, c.Posts, c.Category, c.ModerationLevel)),
		)

		if i == m.Selected {
			s.WriteString(selectedStyle.Render(item))
		} else {
			s.WriteString(itemStyle.Render(item))
		}
		s.WriteString("\n")
	}

	return s.String()
}

type communitiesLoadedMsg struct {
	communities []domain.Community
}

func loadCommunities() tea.Cmd {
	return func() tea.Msg {
		err, communities := db.GetDB().ReadCommunities()
		if err != nil {
			log.Printf("Failed to load communities: %v", err)
			return communitiesLoadedMsg{communities: []domain.Community{}}
		}
		if communities == nil {
			return communitiesLoadedMsg{communities: []domain.Community{}}
		}
		return communitiesLoadedMsg{communities: *communities}
	}
}

func toggleJoin(id uuid.UUID, joined bool) tea.Cmd {
	return func() tea.Msg {
		if err := db.GetDB().UpdateCommunityJoined(id, joined); err != nil {
			log.Printf("Failed to update membership: %v", err)
		}
		return nil
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
