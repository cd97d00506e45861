package privacy

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/ui/common"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			MarginBottom(1)

	onStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(common.COLOR_GREEN)).
		Bold(true)

	offStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY))

	scoreHighStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN)).
			Bold(true)

	scoreLowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_YELLOW)).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY)).
			Italic(true)
)

// settingRow pairs a label with its explanation and whether enabling it
// costs or gains privacy-score points.
type settingRow struct {
	label       string
	description string
	scoreIfOff  bool
}

var rows = []settingRow{
	{"Public profile", "Anyone can view your profile and posts", true},
	{"Show online status", "Contacts can see when you are active", true},
	{"Allow discovery", "Appear in search and suggestions", true},
	{"Personalized feed", "Rank your feed using interaction history", true},
}

type Model struct {
	User   *domain.UserIdentity
	Width  int
	Height int
}

func InitialModel(width, height int) Model {
	return Model{
		Width:  width,
		Height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(common.AuthSuccessMsg); ok {
		identity := msg.Identity
		m.User = &identity
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Privacy Center"))
	s.WriteString("\n\n")

	settings := m.settings()
	values := []bool{
		settings.PublicProfile,
		settings.ShowOnlineStatus,
		settings.AllowDiscovery,
		settings.PersonalizedFeed,
	}

	var card strings.Builder
	score := 0
	for i, row := range rows {
		state := offStyle.Render("off")
		if values[i] {
			state = onStyle.Render("on ")
		} else if row.scoreIfOff {
			score += 25
		}
		card.WriteString(fmt.Sprintf("%s  %s\n     %s\n",
			state, row.label, hintStyle.Render(row.description)))
	}
	s.WriteString(cardStyle.Render(strings.TrimRight(card.String(), "\n")))
	s.WriteString("\n")

	scoreStyle := scoreLowStyle
	verdict := "Your data is broadly visible. Turn settings off to lock things down."
	if score >= 50 {
		scoreStyle = scoreHighStyle
		verdict = "Good. Most of your activity stays between you and your contacts."
	}
	s.WriteString(fmt.Sprintf("Privacy score: %s\n%s\n\n",
		scoreStyle.Render(fmt.Sprintf("%d/100", score)),
		hintStyle.Render(verdict)))

	s.WriteString(common.HelpStyle.Render("settings were chosen during signup; edit them under Settings"))
	return s.String()
}

func (m Model) settings() domain.PrivacySettings {
	if m.User != nil && m.User.PrivacySettings != nil {
		return *m.User.PrivacySettings
	}
	// signup without explicit choices defaults to everything visible
	return domain.PrivacySettings{
		PublicProfile:    true,
		ShowOnlineStatus: true,
		AllowDiscovery:   true,
		PersonalizedFeed: true,
	}
}
