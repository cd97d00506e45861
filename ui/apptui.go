package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/trustnet/trustnet/auth"
	"github.com/trustnet/trustnet/domain"
	"github.com/trustnet/trustnet/session"
	"github.com/trustnet/trustnet/ui/common"
	"github.com/trustnet/trustnet/ui/communities"
	"github.com/trustnet/trustnet/ui/feed"
	"github.com/trustnet/trustnet/ui/forums"
	"github.com/trustnet/trustnet/ui/header"
	"github.com/trustnet/trustnet/ui/landing"
	"github.com/trustnet/trustnet/ui/login"
	"github.com/trustnet/trustnet/ui/messaging"
	"github.com/trustnet/trustnet/ui/notifications"
	"github.com/trustnet/trustnet/ui/onboarding"
	"github.com/trustnet/trustnet/ui/privacy"
	"github.com/trustnet/trustnet/ui/profile"
	"github.com/trustnet/trustnet/ui/search"
	"github.com/trustnet/trustnet/ui/settings"
	"github.com/trustnet/trustnet/ui/sidebar"
	"github.com/trustnet/trustnet/ui/trending"
	"github.com/trustnet/trustnet/ui/videocall"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Align(lipgloss.Top, lipgloss.Top).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(common.COLOR_DARK_GREY)).
			MarginLeft(1).
			Padding(1)

	contentStyle = lipgloss.NewStyle().
			Align(lipgloss.Top, lipgloss.Top).
			BorderStyle(lipgloss.HiddenBorder()).
			MarginLeft(1)
)

type MainModel struct {
	width  int
	height int

	controller *session.Controller
	client     *auth.Client

	headerModel  header.Model
	sidebarModel sidebar.Model

	landingModel    landing.Model
	loginModel      login.Model
	onboardingModel onboarding.Model

	feedModel          feed.Model
	communitiesModel   communities.Model
	messagingModel     messaging.Model
	videocallModel     videocall.Model
	forumsModel        forums.Model
	privacyModel       privacy.Model
	profileModel       profile.Model
	notificationsModel notifications.Model
	settingsModel      settings.Model
	searchModel        search.Model
	trendingModel      trending.Model
}

func NewModel(controller *session.Controller, client *auth.Client, width int, height int) MainModel {

	width = common.DefaultWindowWidth(width)
	height = common.DefaultWindowHeight(height)

	state := controller.State()
	contentWidth := common.DefaultContentWidth(width)

	m := MainModel{
		controller: controller,
		client:     client,
		width:      width,
		height:     height,
	}
	m.headerModel = header.Model{Width: width, User: state.CurrentUser, ActiveView: state.ActiveView}
	m.sidebarModel = sidebar.InitialModel(state.ActiveView, common.DefaultSidebarWidth(width), height)
	m.landingModel = landing.InitialModel(width, height)
	m.loginModel = login.InitialModel(client)
	m.onboardingModel = onboarding.InitialModel(client)
	m.feedModel = feed.InitialModel(contentWidth, height)
	m.communitiesModel = communities.InitialModel(contentWidth, height)
	m.messagingModel = messaging.InitialModel(contentWidth, height)
	m.videocallModel = videocall.InitialModel(contentWidth, height)
	m.forumsModel = forums.InitialModel(contentWidth, height)
	m.privacyModel = privacy.InitialModel(contentWidth, height)
	m.profileModel = profile.InitialModel(contentWidth, height)
	m.notificationsModel = notifications.InitialModel(contentWidth, height)
	m.settingsModel = settings.InitialModel(contentWidth, height)
	m.searchModel = search.InitialModel(contentWidth, height)
	m.trendingModel = trending.InitialModel(contentWidth, height)

	m.privacyModel.User = state.CurrentUser
	m.profileModel.User = state.CurrentUser

	return m
}

func (m MainModel) Init() tea.Cmd {
	if m.controller.Screen() != session.AppScreen {
		return nil
	}
	return tea.Batch(
		m.sidebarModel.Init(),
		m.feedModel.Init(),
		m.profileModel.Init(),
	)
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerModel.Width = msg.Width
		return m, nil

	case common.StartMsg:
		if err := m.controller.Start(); err != nil {
			log.Printf("Could not start session: %v", err)
		}
		return m, nil

	case common.ChooseLoginMsg:
		if err := m.controller.ChooseLogin(); err != nil {
			log.Printf("Could not switch to login: %v", err)
		}
		m.loginModel = login.InitialModel(m.client)
		return m, m.loginModel.Init()

	case common.ChooseSignupMsg:
		if err := m.controller.ChooseSignup(); err != nil {
			log.Printf("Could not switch to signup: %v", err)
		}
		m.onboardingModel = onboarding.InitialModel(m.client)
		return m, m.onboardingModel.Init()

	case common.AuthSuccessMsg:
		if err := m.controller.CompleteAuthentication(msg.Identity); err != nil {
			log.Printf("Could not complete authentication: %v", err)
			return m, nil
		}
		state := m.controller.State()
		m.headerModel.User = state.CurrentUser
		m.headerModel.ActiveView = state.ActiveView
		m.sidebarModel.ActiveView = state.ActiveView
		cmds = append(cmds, m.sidebarModel.Init(), m.feedModel.Init(), m.profileModel.Init())

	case common.NavigateMsg:
		if err := m.controller.Navigate(msg.View); err != nil {
			log.Printf("Could not navigate: %v", err)
			return m, nil
		}
		m.headerModel.ActiveView = m.controller.State().ActiveView
		cmds = append(cmds, m.viewInitCmd(msg.View))

	case common.LogoutMsg:
		if err := m.controller.Logout(); err != nil {
			log.Printf("Could not log out: %v", err)
		}
		fresh := NewModel(m.controller, m.client, m.width, m.height)
		return fresh, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x":
			if m.controller.State().Authenticated {
				return m, func() tea.Msg { return common.LogoutMsg{} }
			}
		case "tab":
			if m.controller.Screen() == session.AppScreen {
				next := domain.NextView(m.controller.State().ActiveView)
				return m, func() tea.Msg { return common.NavigateMsg{View: next} }
			}
		case "shift+tab":
			if m.controller.Screen() == session.AppScreen {
				prev := domain.PrevView(m.controller.State().ActiveView)
				return m, func() tea.Msg { return common.NavigateMsg{View: prev} }
			}
		}
	}

	// Non-keyboard messages go to ALL sub-models so data loading messages
	// like postsLoadedMsg reach their destination; keyboard input is routed
	// only to the active screen below.
	if _, isKeyMsg := msg.(tea.KeyMsg); !isKeyMsg {
		m.headerModel, _ = m.headerModel.Update(msg)
		m.sidebarModel, cmd = m.sidebarModel.Update(msg)
		cmds = append(cmds, cmd)
		m.loginModel, cmd = m.loginModel.Update(msg)
		cmds = append(cmds, cmd)
		m.onboardingModel, cmd = m.onboardingModel.Update(msg)
		cmds = append(cmds, cmd)
		m.feedModel, cmd = m.feedModel.Update(msg)
		cmds = append(cmds, cmd)
		m.communitiesModel, cmd = m.communitiesModel.Update(msg)
		cmds = append(cmds, cmd)
		m.messagingModel, cmd = m.messagingModel.Update(msg)
		cmds = append(cmds, cmd)
		m.videocallModel, cmd = m.videocallModel.Update(msg)
		cmds = append(cmds, cmd)
		m.forumsModel, cmd = m.forumsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.privacyModel, cmd = m.privacyModel.Update(msg)
		cmds = append(cmds, cmd)
		m.profileModel, cmd = m.profileModel.Update(msg)
		cmds = append(cmds, cmd)
		m.notificationsModel, cmd = m.notificationsModel.Update(msg)
		cmds = append(cmds, cmd)
		m.searchModel, cmd = m.searchModel.Update(msg)
		cmds = append(cmds, cmd)
		m.trendingModel, cmd = m.trendingModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		switch m.controller.Screen() {
		case session.LandingScreen:
			m.landingModel, cmd = m.landingModel.Update(msg)
		case session.LoginScreen:
			m.loginModel, cmd = m.loginModel.Update(msg)
		case session.OnboardingScreen:
			m.onboardingModel, cmd = m.onboardingModel.Update(msg)
		case session.AppScreen:
			switch m.controller.State().ActiveView {
			case domain.FeedView:
				m.feedModel, cmd = m.feedModel.Update(msg)
			case domain.CommunitiesView:
				m.communitiesModel, cmd = m.communitiesModel.Update(msg)
			case domain.MessagesView:
				m.messagingModel, cmd = m.messagingModel.Update(msg)
			case domain.VideoView:
				m.videocallModel, cmd = m.videocallModel.Update(msg)
			case domain.ForumsView:
				m.forumsModel, cmd = m.forumsModel.Update(msg)
			case domain.PrivacyView:
				m.privacyModel, cmd = m.privacyModel.Update(msg)
			case domain.ProfileView:
				m.profileModel, cmd = m.profileModel.Update(msg)
			case domain.NotificationsView:
				m.notificationsModel, cmd = m.notificationsModel.Update(msg)
			case domain.SettingsView:
				m.settingsModel, cmd = m.settingsModel.Update(msg)
			case domain.SearchView:
				m.searchModel, cmd = m.searchModel.Update(msg)
			case domain.TrendingView:
				m.trendingModel, cmd = m.trendingModel.Update(msg)
			}
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m MainModel) View() string {
	switch m.controller.Screen() {
	case session.LandingScreen:
		return m.landingModel.View()
	case session.LoginScreen:
		return m.loginModel.ViewWithSize(m.width, m.height)
	case session.OnboardingScreen:
		return m.onboardingModel.ViewWithSize(m.width, m.height)
	}

	var s string

	availableHeight := m.height - 10
	sidebarWidth := common.DefaultSidebarWidth(m.width)
	contentWidth := m.width - sidebarWidth - 6

	s += m.headerModel.View() + "\n"

	sidebarStr := lipgloss.NewStyle().
		MaxHeight(availableHeight).
		Height(availableHeight).
		Width(sidebarWidth).
		MaxWidth(sidebarWidth).
		Render(m.sidebarModel.View())

	contentStr := lipgloss.NewStyle().
		MaxHeight(availableHeight).
		Height(availableHeight).
		Width(contentWidth).
		MaxWidth(contentWidth).
		Margin(1).
		Render(m.activeViewBody())

	s += lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebarStr),
		contentStyle.Render(contentStr))

	s += common.HelpStyle.Render(fmt.Sprintf(
		"view > %s\t\tkeys > tab: next • shift+tab: prev • %s • ctrl+x: log out • ctrl+c: exit",
		m.controller.State().ActiveView, m.viewCommands()))

	return lipgloss.NewStyle().Render(s)
}

func (m MainModel) activeViewBody() string {
	switch m.controller.State().ActiveView {
	case domain.CommunitiesView:
		return m.communitiesModel.View()
	case domain.MessagesView:
		return m.messagingModel.View()
	case domain.VideoView:
		return m.videocallModel.View()
	case domain.ForumsView:
		return m.forumsModel.View()
	case domain.PrivacyView:
		return m.privacyModel.View()
	case domain.ProfileView:
		return m.profileModel.View()
	case domain.NotificationsView:
		return m.notificationsModel.View()
	case domain.SettingsView:
		return m.settingsModel.View()
	case domain.SearchView:
		return m.searchModel.View()
	case domain.TrendingView:
		return m.trendingModel.View()
	default:
		return m.feedModel.View()
	}
}

func (m MainModel) viewCommands() string {
	switch m.controller.State().ActiveView {
	case domain.FeedView:
		return "↑/↓: select • l: like"
	case domain.CommunitiesView:
		return "↑/↓: select • enter: join/leave"
	case domain.MessagesView:
		return "↑/↓: select • enter: open"
	case domain.VideoView:
		return "m: mic • v: camera"
	case domain.ForumsView:
		return "↑/↓: select • enter: expand"
	case domain.NotificationsView:
		return "r: mark all read"
	case domain.SettingsView:
		return "↑/↓: select • space: toggle"
	case domain.SearchView:
		return "type • enter: search"
	default:
		return " "
	}
}

// viewInitCmd reloads a view's data when it becomes active.
func (m *MainModel) viewInitCmd(view domain.ViewID) tea.Cmd {
	switch view {
	case domain.FeedView:
		return m.feedModel.Init()
	case domain.CommunitiesView:
		return m.communitiesModel.Init()
	case domain.MessagesView:
		return m.messagingModel.Init()
	case domain.VideoView:
		return m.videocallModel.Init()
	case domain.ForumsView:
		return m.forumsModel.Init()
	case domain.ProfileView:
		return m.profileModel.Init()
	case domain.NotificationsView:
		return m.notificationsModel.Init()
	case domain.TrendingView:
		return m.trendingModel.Init()
	default:
		return nil
	}
}
