package trending

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

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_MAGENTA)).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	risingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN)).
			Bold(true)

	fallingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_RED))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE))
)

type Model struct {
	Items  []domain.TrendingItem
	Width  int
	Height int
}

func InitialModel(width, height int) Model {
	return Model{
		Items:  []domain.TrendingItem{},
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadTrending()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(trendingLoadedMsg); ok {
		m.Items = msg.items
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Trending Now"))
	s.WriteString("\n\n")

	if len(m.Items) == 0 {
		s.WriteString(common.EmptyStyle.Render("Nothing trending right now."))
		return s.String()
	}

	for i, item := range m.Items {
		direction := fallingStyle.Render(fmt.Sprintf("↓ %d%%", item.Change))
		if item.Rising {
			direction = risingStyle.Render(fmt.Sprintf("↑ %d%%", item.Change))
		}

		s.WriteString(fmt.Sprintf("%s %s %s\n   %s • %s • %s\n\n",
			rankStyle.Render(fmt.Sprintf("#%d", i+1)),
			titleStyle.Render(item.Title),
			direction,
			kindStyle.Render(item.Kind),
			countStyle.Render(fmt.Sprintf("%d mentions", item.Count)),
			kindStyle.Render(item.Category),
		))
	}

	return s.String()
}

type trendingLoadedMsg struct {
	items []domain.TrendingItem
}

func loadTrending() tea.Cmd {
	return func() tea.Msg {
		err, items := db.GetDB().ReadTrending()
		if err != nil {
			log.Printf("Failed to load trending: %v", err)
			return trendingLoadedMsg{items: []domain.TrendingItem{}}
		}
		if items == nil {
			return trendingLoadedMsg{items: []domain.TrendingItem{}}
		}
		return trendingLoadedMsg{items: *items}
	}
}
