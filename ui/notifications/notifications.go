package notifications

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

	actorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	readStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Faint(true)

	unreadDot = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Bold(true).
			Render("●")
)

var kindIcons = map[string]string{
	"like":        "♥",
	"comment":     "💬",
	"follow":      "+",
	"community":   "⌂",
	"achievement": "★",
}

type Model struct {
	Notifications []domain.Notification
	Width         int
	Height        int
}

func InitialModel(width, height int) Model {
	return Model{
		Notifications: []domain.Notification{},
		Width:         width,
		Height:        height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadNotifications()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		m.Notifications = msg.notifications
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			for i := range m.Notifications {
				m.Notifications[i].Read = true
			}
			return m, tea.Batch(markAllRead(), func() tea.Msg { return common.RefreshBadgesMsg{} })
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	unread := 0
	for _, n := range m.Notifications {
		if !n.Read {
			unread++
		}
	}

	s.WriteString(headerStyle.Render(fmt.Sprintf("Notifications (%d unread)", unread)))
	s.WriteString("\n\n")

	if len(m.Notifications) == 0 {
		s.WriteString(common.EmptyStyle.Render("You're all caught up."))
		return s.String()
	}

	for _, n := range m.Notifications {
		icon := kindIcons[n.Kind]
		if icon == "" {
			icon = "•"
		}

		marker := " "
		style := readStyle
		if !n.Read {
			marker = unreadDot
			style = contentStyle
		}

		s.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
			marker,
			icon,
			actorStyle.Render(n.Actor),
			style.Render(n.Content),
			metaStyle.Render(formatTime(n.CreatedAt)),
		))
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("r: mark all read"))
	return s.String()
}

type notificationsLoadedMsg struct {
	notifications []domain.Notification
}

func loadNotifications() tea.Cmd {
	return func() tea.Msg {
		err, notifications := db.GetDB().ReadNotifications()
		if err != nil {
			log.Printf("Failed to load notifications: %v", err)
			return notificationsLoadedMsg{notifications: []domain.Notification{}}
		}
		if notifications == nil {
			return notificationsLoadedMsg{notifications: []domain.Notification{}}
		}
		return notificationsLoadedMsg{notifications: *notifications}
	}
}

func markAllRead() tea.Cmd {
	return func() tea.Msg {
		if err := db.GetDB().MarkNotificationsRead(); err != nil {
			log.Printf("Failed to mark notifications read: %v", err)
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
