package forums

import (
	"fmt"
	"log"
	"strings"
	"time"

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

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	pinnedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_YELLOW))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_RED))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_MAGENTA))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

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
	Threads  []domain.Thread
	Selected int
	Expanded bool
	Width    int
	Height   int
}

func InitialModel(width, height int) Model {
	return Model{
		Threads: []domain.Thread{},
		Width:   width,
		Height:  height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadThreads()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case threadsLoadedMsg:
		m.Threads = msg.threads
		m.Selected = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.Selected > 0 {
				m.Selected--
				m.Expanded = false
			}
		case "down", "j":
			if len(m.Threads) > 0 && m.Selected < len(m.Threads)-1 {
				m.Selected++
				m.Expanded = false
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(fmt.Sprintf("Forums (%d threads)", len(m.Threads))))
	s.WriteString("\n\n")

	if len(m.Threads) == 0 {
		s.WriteString(common.EmptyStyle.Render("No threads yet. Start a discussion!"))
		return s.String()
	}

	displayCount := min(len(m.Threads), 4)
	start := m.Selected
	if start > len(m.Threads)-displayCount {
		start = len(m.Threads) - displayCount
	}

	for i := start; i < start+displayCount; i++ {
		t := m.Threads[i]

		flags := ""
		if t.Pinned {
			flags += pinnedStyle.Render(" 📌 pinned")
		}
		if t.Locked {
			flags += lockedStyle.Render(" 🔒 locked")
		}

		item := fmt.Sprintf("%s %s%s\n%s %s\n%s",
			titleStyle.Render(t.Title),
			categoryStyle.Render("["+t.Category+"]"),
			flags,
			metaStyle.Render(fmt.Sprintf("by %s [trust %d]", t.Author, t.TrustScore)),
			metaStyle.Render(formatTime(t.CreatedAt)),
			metaStyle.Render(fmt.Sprintf("%d replies • %d likes", t.Replies, t.Likes)),
		)

		if i == m.Selected && m.Expanded {
			item += "\n\n" + bodyStyle.Render(t.Content)
		}

		if i == m.Selected {
			s.WriteString(selectedStyle.Render(item))
		} else {
			s.WriteString(itemStyle.Render(item))
		}
		s.WriteString("\n")
	}

	s.WriteString(common.HelpStyle.Render("enter: expand thread"))
	return s.String()
}

type threadsLoadedMsg struct {
	threads []domain.Thread
}

func loadThreads() tea.Cmd {
	return func() tea.Msg {
		err, threads := db.GetDB().ReadThreads()
		if err != nil {
			log.Printf("Failed to load threads: %v", err)
			return threadsLoadedMsg{threads: []domain.Thread{}}
		}
		if threads == nil {
			return threadsLoadedMsg{threads: []domain.Thread{}}
		}
		return threadsLoadedMsg{threads: *threads}
	}
}

func formatTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
