package messaging

import (
	"fmt"
	"log"
	"strings"
	"time"

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

	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	unreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color(common.COLOR_RED)).
			Padding(0, 1).
			Bold(true)

	encryptedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_YELLOW))

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

	bubbleMe = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("63")).
			Padding(0, 1).
			MarginBottom(1)

	bubbleThem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1).
			MarginBottom(1)
)

type Model struct {
	Conversations []domain.Conversation
	Messages      []domain.Message
	Selected      int
	Open          bool
	Width         int
	Height        int
}

func InitialModel(width, height int) Model {
	return Model{
		Conversations: []domain.Conversation{},
		Width:         width,
		Height:        height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadConversations()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case conversationsLoadedMsg:
		m.Conversations = msg.conversations
		if m.Selected >= len(m.Conversations) {
			m.Selected = 0
		}
		return m, nil

	case messagesLoadedMsg:
		m.Messages = msg.messages
		m.Open = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if !m.Open && m.Selected > 0 {
				m.Selected--
			}
		case "down", "j":
			if !m.Open && len(m.Conversations) > 0 && m.Selected < len(m.Conversations)-1 {
				m.Selected++
			}
		case "enter":
			if m.Open || len(m.Conversations) == 0 {
				return m, nil
			}
			c := &m.Conversations[m.Selected]
			hadUnread := c.UnreadCount > 0
			c.UnreadCount = 0
			cmds := []tea.Cmd{openConversation(c.Id)}
			if hadUnread {
				cmds = append(cmds, func() tea.Msg { return common.RefreshBadgesMsg{} })
			}
			return m, tea.Batch(cmds...)
		case "esc", "backspace":
			if m.Open {
				m.Open = false
				m.Messages = nil
				return m, loadConversations()
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.Open {
		return m.conversationView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Messages"))
	s.WriteString("\n\n")

	if len(m.Conversations) == 0 {
		s.WriteString(common.EmptyStyle.Render("No conversations yet."))
		return s.String()
	}

	for i, c := range m.Conversations {
		presence := metaStyle.Render("○")
		if c.Online {
			presence = onlineStyle.Render("●")
		}

		badges := ""
		if c.UnreadCount > 0 {
			badges = " " + unreadStyle.Render(fmt.Sprintf("%d", c.UnreadCount))
		}
		if c.Encrypted {
			badges += encryptedStyle.Render(" 🔒")
		}

		item := fmt.Sprintf("%s %s @%s%s\n%s\n%s",
			presence,
			nameStyle.Render(c.Participant),
			c.Username,
			badges,
			previewStyle.Render(truncate(c.LastMessage, 80)),
			metaStyle.Render(formatTime(c.UpdatedAt)),
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

func (m Model) conversationView() string {
	var s strings.Builder

	var c domain.Conversation
	if m.Selected < len(m.Conversations) {
		c = m.Conversations[m.Selected]
	}

	title := fmt.Sprintf("Conversation with %s", c.Participant)
	if c.Encrypted {
		title += encryptedStyle.Render("  end-to-end encrypted")
	}
	s.WriteString(headerStyle.Render(title))
	s.WriteString("\n\n")

	if len(m.Messages) == 0 {
		s.WriteString(common.EmptyStyle.Render("No messages."))
	}

	for _, msg := range m.Messages {
		line := fmt.Sprintf("%s\n%s", msg.Content, metaStyle.Render(formatTime(msg.CreatedAt)))
		if msg.Sender == "you" {
			s.WriteString(bubbleMe.Render(line))
		} else {
			s.WriteString(bubbleThem.Render(line))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(common.HelpStyle.Render("esc: back to conversations"))
	return s.String()
}

type conversationsLoadedMsg struct {
	conversations []domain.Conversation
}

type messagesLoadedMsg struct {
	messages []domain.Message
}

func loadConversations() tea.Cmd {
	return func() tea.Msg {
		err, conversations := db.GetDB().ReadConversations()
		if err != nil {
			log.Printf("Failed to load conversations: %v", err)
			return conversationsLoadedMsg{conversations: []domain.Conversation{}}
		}
		if conversations == nil {
			return conversationsLoadedMsg{conversations: []domain.Conversation{}}
		}
		return conversationsLoadedMsg{conversations: *conversations}
	}
}

func openConversation(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		database := db.GetDB()
		if err := database.MarkConversationRead(id); err != nil {
			log.Printf("Failed to mark conversation read: %v", err)
		}
		err, messages := database.ReadMessagesByConversation(id)
		if err != nil {
			log.Printf("Failed to load messages: %v", err)
			return messagesLoadedMsg{messages: []domain.Message{}}
		}
		if messages == nil {
			return messagesLoadedMsg{messages: []domain.Message{}}
		}
		return messagesLoadedMsg{messages: *messages}
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

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
