package sidebar

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
	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_PURPLE)).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(1)
)

type Model struct {
	ActiveView          domain.ViewID
	UnreadMessages      int
	UnreadNotifications int
	Width               int
	Height              int
}

func InitialModel(activeView domain.ViewID, width, height int) Model {
	return Model{
		ActiveView: activeView,
		Width:      width,
		Height:     height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadBadges()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		m.UnreadMessages = msg.unreadMessages
		m.UnreadNotifications = msg.unreadNotifications
		return m, nil
	case common.RefreshBadgesMsg:
		return m, loadBadges()
	case common.NavigateMsg:
		m.ActiveView = msg.View
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	for _, view := range domain.AllViews {
		label := view.String()

		switch view {
		case domain.MessagesView:
			if m.UnreadMessages > 0 {
				label = fmt.Sprintf("%s %s", label, common.BadgeStyle.Render(fmt.Sprintf("(%d)", m.UnreadMessages)))
			}
		case domain.NotificationsView:
			if m.UnreadNotifications > 0 {
				label = fmt.Sprintf("%s %s", label, common.BadgeStyle.Render(fmt.Sprintf("(%d)", m.UnreadNotifications)))
			}
		}

		if view == m.ActiveView {
			s.WriteString(activeStyle.Render("> " + label))
		} else {
			s.WriteString(itemStyle.Render("  " + label))
		}
		s.WriteString("\n")
	}

	return s.String()
}

// badgesLoadedMsg carries the unread counters for the sidebar badges
type badgesLoadedMsg struct {
	unreadMessages      int
	unreadNotifications int
}

func loadBadges() tea.Cmd {
	return func() tea.Msg {
		database := db.GetDB()

		err, unreadMessages := database.CountUnreadMessages()
		if err != nil {
			log.Printf("Failed to count unread messages: %v", err)
		}

		err, unreadNotifications := database.CountUnreadNotifications()
		if err != nil {
			log.Printf("Failed to count unread notifications: %v", err)
		}

		return badgesLoadedMsg{
			unreadMessages:      unreadMessages,
			unreadNotifications: unreadNotifications,
		}
	}
}
