package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/ui/common"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_MAGENTA)).
			Bold(true).
			MarginTop(1)

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(common.COLOR_GREEN)).
		Bold(true)

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Bold(true)
)

type toggle struct {
	section string
	label   string
	on      bool
}

type Model struct {
	Toggles []toggle
	Cursor  int
	Width   int
	Height  int
}

func InitialModel(width, height int) Model {
	return Model{
		Toggles: []toggle{
			{"Appearance", "Dark mode", true},
			{"Appearance", "Compact layout", false},
			{"Notifications", "Mention alerts", true},
			{"Notifications", "Community digests", true},
			{"Notifications", "Quiet hours (22:00-08:00)", false},
			{"Playback", "Autoplay media", false},
			{"Playback", "Data saver", true},
		},
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Toggles)-1 {
				m.Cursor++
			}
		case "enter", " ":
			m.Toggles[m.Cursor].on = !m.Toggles[m.Cursor].on
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Settings"))
	s.WriteString("\n")

	lastSection := ""
	for i, t := range m.Toggles {
		if t.section != lastSection {
			s.WriteString(sectionStyle.Render(t.section))
			s.WriteString("\n")
			lastSection = t.section
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = cursorStyle.Render("> ")
		}

		state := offStyle.Render("[ off ]")
		if t.on {
			state = onStyle.Render("[ on  ]")
		}

		s.WriteString(fmt.Sprintf("%s%s %s\n", cursor, state, t.label))
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("space: toggle • changes apply to this session"))
	return s.String()
}
