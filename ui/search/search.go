package search

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/db"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/util"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Padding(0, 1).
			MarginBottom(1)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	trustStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			MarginBottom(1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY)).
			Italic(true)
)

type Model struct {
	Input    textinput.Model
	Results  []domain.Post
	Searched bool
	Width    int
	Height   int
}

func InitialModel(width, height int) Model {
	input := textinput.New()
	input.Placeholder = "Search posts, people, communities..."
	input.CharLimit = 120
	input.Width = 50
	input.Focus()

	return Model{
		Input:  input,
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		m.Results = msg.posts
		m.Searched = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := util.NormalizeInput(m.Input.Value())
			if query == "" {
				m.Results = nil
				m.Searched = false
				return m, nil
			}
			return m, runSearch(query)
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Search"))
	s.WriteString("\n\n")
	s.WriteString(inputStyle.Render(m.Input.View()))
	s.WriteString("\n\n")

	if !m.Searched {
		s.WriteString(common.EmptyStyle.Render("Type a query and press enter."))
		return s.String()
	}

	if len(m.Results) == 0 {
		s.WriteString(common.EmptyStyle.Render(fmt.Sprintf("No results for %q.", m.Input.Value())))
		return s.String()
	}

	s.WriteString(countStyle.Render(fmt.Sprintf("%d results", len(m.Results))))
	s.WriteString("\n\n")

	for _, post := range m.Results {
		s.WriteString(fmt.Sprintf("%s %s\n%s\n",
			authorStyle.Render(fmt.Sprintf("%s @%s", post.Author, post.Username)),
			trustStyle.Render(fmt.Sprintf("[trust %d]", post.TrustScore)),
			resultStyle.Render(truncate(post.Content, 120)),
		))
	}

	return s.String()
}

type resultsMsg struct {
	posts []domain.Post
}

func runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		err, posts := db.GetDB().SearchPosts(query)
		if err != nil {
			log.Printf("Search failed: %v", err)
			return resultsMsg{posts: []domain.Post{}}
		}
		if posts == nil {
			return resultsMsg{posts: []domain.Post{}}
		}
		return resultsMsg{posts: *posts}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
