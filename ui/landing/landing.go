package landing

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/util"
)

var (
	Style = lipgloss.NewStyle().Height(25).Width(80).
		Align(lipgloss.Center, lipgloss.Center).
		BorderStyle(lipgloss.ThickBorder()).
		Margin(0, 3)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_PURPLE)).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE))
)

type Model struct {
	Width  int
	Height int
}

func InitialModel(width, height int) Model {
	return Model{Width: width, Height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "g":
			return m, func() tea.Msg { return common.StartMsg{} }
		case "l":
			return m, tea.Sequence(
				func() tea.Msg { return common.StartMsg{} },
				func() tea.Msg { return common.ChooseLoginMsg{} },
			)
		}
	}
	return m, nil
}

func (m Model) View() string {
	content := fmt.Sprintf(
		"%s\n\n%s\n\n\n%s\n\n%s",
		titleStyle.Render(fmt.Sprintf("TRUSTNET v%s", util.GetVersion())),
		taglineStyle.Render("The social network that puts you in control."),
		"enter: get started  •  l: log in",
		common.HelpStyle.Render("ctrl-c: exit"),
	)

	bordered := Style.Render(content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, bordered)
}
