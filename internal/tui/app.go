package tui

import (
	"log"

	"dsa_sheet/internal/client"

	tea "github.com/charmbracelet/bubbletea"
)

type appState int

const (
	stateLogin appState = iota
	stateDashboard
)

// App is the root model. It owns the session lifecycle: restore on start,
// persist after auth, clear on sign-out.
type App struct {
	api   *client.Client
	store *client.SessionStore

	state     appState
	login     loginModel
	dashboard dashboardModel
}

func NewApp(api *client.Client, store *client.SessionStore, session *client.Session) App {
	app := App{
		api:   api,
		store: store,
		state: stateLogin,
		login: newLoginModel(api),
	}
	if session != nil {
		app.state = stateDashboard
		app.dashboard = newDashboardModel(api, session)
	}
	return app
}

func (a App) Init() tea.Cmd {
	if a.state == stateDashboard {
		return a.dashboard.Init()
	}
	return a.login.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateDashboard {
				return a, tea.Quit
			}
		}

	case authResultMsg:
		if msg.err == nil {
			session := &client.Session{User: msg.resp.User, Token: msg.resp.Token}
			if err := a.store.Save(session); err != nil {
				log.Printf("failed to persist session: %v", err)
			}
			a.state = stateDashboard
			a.dashboard = newDashboardModel(a.api, session)
			return a, a.dashboard.Init()
		}

	case signOutMsg:
		if err := a.store.Clear(); err != nil {
			log.Printf("failed to clear session: %v", err)
		}
		a.state = stateLogin
		a.login = newLoginModel(a.api)
		return a, a.login.Init()
	}

	var cmd tea.Cmd
	switch a.state {
	case stateLogin:
		a.login, cmd = a.login.Update(msg)
	case stateDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	switch a.state {
	case stateDashboard:
		return a.dashboard.View()
	default:
		return a.login.View()
	}
}
