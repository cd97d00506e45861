package videocall

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

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(22).
			Height(5).
			Align(lipgloss.Center, lipgloss.Center)

	tileOffStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Width(22).
			Height(5).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color(common.COLOR_GREY))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_RED))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREEN)).
			Bold(true)

	controlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(common.COLOR_GREY)).
			MarginTop(1)
)

type Model struct {
	Participants []domain.CallParticipant
	Muted        bool
	VideoOff     bool
	Started      time.Time
	Width        int
	Height       int
}

func InitialModel(width, height int) Model {
	return Model{
		Participants: []domain.CallParticipant{},
		Started:      time.Now(),
		Width:        width,
		Height:       height,
	}
}

func (m Model) Init() tea.Cmd {
	return loadParticipants()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case participantsLoadedMsg:
		m.Participants = msg.participants
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "m":
			m.Muted = !m.Muted
		case "v":
			m.VideoOff = !m.VideoOff
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Video Call"))
	s.WriteString("  ")
	s.WriteString(liveStyle.Render("● live"))
	s.WriteString("\n\n")

	if len(m.Participants) == 0 {
		s.WriteString(common.EmptyStyle.Render("No one is in the call."))
		return s.String()
	}

	var tiles []string
	for _, p := range m.Participants {
		label := p.Name
		if p.Muted {
			label += "\n" + mutedStyle.Render("muted")
		}
		if p.VideoOff {
			tiles = append(tiles, tileOffStyle.Render(label+"\n(camera off)"))
		} else {
			tiles = append(tiles, tileStyle.Render(label))
		}
	}

	// two tiles per row
	for i := 0; i < len(tiles); i += 2 {
		row := tiles[i : min(i+2, len(tiles))]
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		s.WriteString("\n")
	}

	mic := "mic on"
	if m.Muted {
		mic = mutedStyle.Render("mic muted")
	}
	cam := "camera on"
	if m.VideoOff {
		cam = mutedStyle.Render("camera off")
	}
	s.WriteString(controlStyle.Render(fmt.Sprintf("you: %s • %s   (m: toggle mic, v: toggle camera)", mic, cam)))

	return s.String()
}

type participantsLoadedMsg struct {
	participants []domain.CallParticipant
}

func loadParticipants() tea.Cmd {
	return func() tea.Msg {
		err, participants := db.GetDB().ReadCallParticipants()
		if err != nil {
			log.Printf("Failed to load participants: %v", err)
			return participantsLoadedMsg{participants: []domain.CallParticipant{}}
		}
		if participants == nil {
			return participantsLoadedMsg{participants: []domain.CallParticipant{}}
		}
		return participantsLoadedMsg{participants: *participants}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
