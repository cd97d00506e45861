package login

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/auth"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
)

var (
	Style = lipgloss.NewStyle().Height(25).Width(80).
		Align(lipgloss.Center, lipgloss.Center).
		BorderStyle(lipgloss.ThickBorder()).
		Margin(0, 3)
)

type Model struct {
	Email    textinput.Model
	Password textinput.Model
	Step     int // 0=email, 1=password
	Pending  bool
	ErrText  string
	client   *auth.Client
}

func InitialModel(client *auth.Client) Model {
	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 200
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return Model{
		Email:    email,
		Password: password,
		Step:     0,
		client:   client,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func loginCmd(client *auth.Client, email string, password string) tea.Cmd {
	return func() tea.Msg {
		creds, err := client.Login(email, password)
		if err != nil {
			var authErr *auth.AuthError
			if errors.As(err, &authErr) {
				return common.AuthFailedMsg{Message: authErr.Message}
			}
			return common.AuthFailedMsg{Message: err.Error()}
		}
		return common.AuthSuccessMsg{Identity: domain.UserIdentity{
			Id:    creds.User.Id,
			Name:  creds.User.Name,
			Email: creds.User.Email,
			Token: creds.Token,
		}}
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
		// One outstanding request at a time; drop keys until it resolves
		if m.Pending {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			if m.Step == 0 {
				m.Step = 1
				m.Password.Focus()
				m.Email.Blur()
				return m, nil
			}
			m.Pending = true
			m.ErrText = ""
			return m, loginCmd(m.client, m.Email.Value(), m.Password.Value())
		case "esc":
			return m, func() tea.Msg { return common.ChooseSignupMsg{} }
		}
	}

	switch m.Step {
	case 0:
		m.Email, cmd = m.Email.Update(msg)
	case 1:
		m.Password, cmd = m.Password.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	var status string
	if m.Pending {
		status = "Logging in..."
	} else if m.ErrText != "" {
		status = common.ErrorStyle.Render(m.ErrText)
	}

	return fmt.Sprintf(
		"Log in to TRUSTNET\n\nEmail:\n%s\n\nPassword:\n%s\n\n%s\n\n%s",
		m.Email.View(),
		m.Password.View(),
		status,
		common.HelpStyle.Render("enter: continue • esc: sign up instead • ctrl-c: exit"),
	)
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
