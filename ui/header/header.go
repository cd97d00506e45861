package header

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/util"
)

type Model struct {
	Width      int
	User       *domain.UserIdentity
	ActiveView domain.ViewID
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	return GetHeaderStyle(m.User, m.ActiveView, m.Width)
}

func GetHeaderStyle(user *domain.UserIdentity, activeView domain.ViewID, width int) string {
	// Each styled box adds border + padding overhead; see the width math in
	// the sidebar before changing these numbers.
	overhead := 12
	availableWidth := width - overhead

	if availableWidth < 40 {
		availableWidth = 40
	}

	nameWidth := availableWidth / 4
	versionWidth := availableWidth / 2
	viewWidth := availableWidth - nameWidth - versionWidth

	displayName := "guest"
	if user != nil {
		displayName = user.Name
	}

	name := lipgloss.
		NewStyle().
		SetString(displayName).
		Align(lipgloss.Left).
		Background(lipgloss.Color(common.COLOR_PURPLE)).
		Padding(1).
		Height(2).
		Width(nameWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	version := lipgloss.
		NewStyle().
		SetString(util.GetNameAndVersion()).
		Width(versionWidth).
		Height(2).
		Background(lipgloss.Color(common.COLOR_GREY)).
		Padding(1).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	view := lipgloss.
		NewStyle().
		SetString(activeView.String()).
		Background(lipgloss.Color(common.COLOR_MAGENTA)).
		Padding(1).
		Align(lipgloss.Left).
		Height(2).
		Width(viewWidth).
		Border(lipgloss.NormalBorder(), true, false, true, false).
		BorderForeground(lipgloss.Color(common.COLOR_MAGENTA)).
		String()

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		name,
		version,
		view,
	)
}
