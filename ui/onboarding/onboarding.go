package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/auth"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/util"
)

var (
	Style = lipgloss.NewStyle().Height(25).Width(80).
		Align(lipgloss.Center, lipgloss.Center).
		BorderStyle(lipgloss.ThickBorder()).
		Margin(0, 3)

	toggleOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN)).
			Bold(true)

	toggleOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_LIGHTBLUE)).
			Bold(true)
)

// privacy preference rows shown in the final step
var privacyLabels = []string{
	"Public profile",
	"Show online status",
	"Allow discovery in search",
	"Personalized feed",
}

type Model struct {
	Name     textinput.Model
	Email    textinput.Model
	Password textinput.Model
	Step     int // 0=name, 1=email, 2=password, 3=privacy preferences
	Cursor   int
	Toggles  [4]bool
	Pending  bool
	ErrText  string
	client   *auth.Client
}

func InitialModel(client *auth.Client) Model {
	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 100
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 200
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "choose a password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return Model{
		Name:     name,
		Email:    email,
		Password: password,
		Step:     0,
		client:   client,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func signupCmd(client *auth.Client, name, email, password string, settings domain.PrivacySettings) tea.Cmd {
	return func() tea.Msg {
		creds, err := client.Signup(name, email, password)
		if err != nil {
			var authErr *auth.AuthError
			if errors.As(err, &authErr) {
				return common.AuthFailedMsg{Message: authErr.Message}
			}
			return common.AuthFailedMsg{Message: err.Error()}
		}
		prefs := settings
		return common.AuthSuccessMsg{Identity: domain.UserIdentity{
			Id:              creds.User.Id,
			Name:            creds.User.Name,
			Email:           creds.User.Email,
			Token:           creds.Token,
			PrivacySettings: &prefs,
		}}
	}
}

func (m Model) settings() domain.PrivacySettings {
	return domain.PrivacySettings{
		PublicProfile:    m.Toggles[0],
		ShowOnlineStatus: m.Toggles[1],
		AllowDiscovery:   m.Toggles[2],
		PersonalizedFeed: m.Toggles[3],
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case common.AuthFailedMsg:
		m.Pending = false
		m.ErrText = msg.Message
		return m, nil

	case tea.KeyMsg:
		if m.Pending {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			switch m.Step {
			case 0:
				m.Step = 1
				m.Email.Focus()
				m.Name.Blur()
				return m, nil
			case 1:
				m.Step = 2
				m.Password.Focus()
				m.Email.Blur()
				return m, nil
			case 2:
				m.Step = 3
				m.Password.Blur()
				return m, nil
			case 3:
				m.Pending = true
				m.ErrText = ""
				return m, signupCmd(m.client, m.Name.Value(), m.Email.Value(), m.Password.Value(), m.settings())
			}
		case "esc":
			return m, func() tea.Msg { return common.ChooseLoginMsg{} }
		}

		if m.Step == 3 {
			switch msg.String() {
			case "up", "k":
				if m.Cursor > 0 {
					m.Cursor--
				}
			case "down", "j":
				if m.Cursor < len(privacyLabels)-1 {
					m.Cursor++
				}
			case " ":
				m.Toggles[m.Cursor] = !m.Toggles[m.Cursor]
			}
			return m, nil
		}
	}

	switch m.Step {
	case 0:
		m.Name, cmd = m.Name.Update(msg)
	case 1:
		m.Email, cmd = m.Email.Update(msg)
	case 2:
		m.Password, cmd = m.Password.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var prompt string
	var input string
	var help string

	switch m.Step {
	case 0:
		prompt = "Welcome to TRUSTNET! What should we call you?"
		input = m.Name.View()
		help = "(enter to continue, esc to log in instead)"
	case 1:
		prompt = fmt.Sprintf("Name: %s\n\nYour email address:", m.Name.Value())
		input = m.Email.View()
		help = "(enter to continue)"
	case 2:
		prompt = fmt.Sprintf("Name: %s\nEmail: %s\n\nChoose a password:", m.Name.Value(), m.Email.Value())
		input = m.Password.View()
		help = "(enter to continue)"
	case 3:
		prompt = "Privacy preferences — everything stays off until you turn it on:"
		var rows []string
		for i, label := range privacyLabels {
			marker := toggleOffStyle.Render("[ ]")
			if m.Toggles[i] {
				marker = toggleOnStyle.Render("[x]")
			}
			row := fmt.Sprintf("%s %s", marker, label)
			if i == m.Cursor {
				row = selectedStyle.Render("> " + row)
			} else {
				row = "  " + row
			}
			rows = append(rows, row)
		}
		input = strings.Join(rows, "\n")
		help = "(↑/↓: select • space: toggle • enter: create account)"
	}

	var status string
	if m.Pending {
		status = "Creating your account..."
	} else if m.ErrText != "" {
		status = common.ErrorStyle.Render(m.ErrText)
	}

	return fmt.Sprintf(
		"Joining TRUSTNET v%s\n\n%s\n\n%s\n\n%s\n\n%s",
		util.GetVersion(),
		prompt,
		input,
		status,
		help,
	) + "\n"
}

// ViewWithSize centers the bordered form in the terminal.
func (m Model) ViewWithSize(termWidth, termHeight int) string {
	contentWidth := termWidth - 8
	if contentWidth < 40 {
		contentWidth = 40
	}

	bordered := Style.Width(contentWidth).Render(m.View())
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, bordered)
}
