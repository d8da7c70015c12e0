package tui

import (
	"context"
	"strings"
	"time"

	"dsa_sheet/internal/client"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// authResultMsg carries the outcome of a register/login call. The app model
// intercepts it to persist the session and switch to the dashboard.
type authResultMsg struct {
	resp *client.AuthResponse
	err  error
}

type loginModel struct {
	api        *client.Client
	inputs     []textinput.Model
	focus      int
	mode       authMode
	submitting bool
	errMsg     string
}

func newLoginModel(api *client.Client) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 255
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 255
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		api:    api,
		inputs: []textinput.Model{email, password},
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focus--
			} else {
				m.focus++
			}
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			if m.focus >= len(m.inputs) {
				m.focus = 0
			}
			cmds := make([]tea.Cmd, len(m.inputs))
			for i := range m.inputs {
				if i == m.focus {
					cmds[i] = m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, tea.Batch(cmds...)
		case "ctrl+t":
			if m.mode == modeSignIn {
				m.mode = modeSignUp
			} else {
				m.mode = modeSignIn
			}
			m.errMsg = ""
			return m, nil
		case "enter":
			email := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			m.submitting = true
			m.errMsg = ""
			return m, m.submit(email, password)
		}

	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) submit(email, password string) tea.Cmd {
	mode := m.mode
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var resp *client.AuthResponse
		var err error
		if mode == modeSignUp {
			resp, err = api.Register(ctx, email, password)
		} else {
			resp, err = api.Login(ctx, email, password)
		}
		return authResultMsg{resp: resp, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	header := "Sign in"
	if m.mode == modeSignUp {
		header = "Create account"
	}
	b.WriteString(titleStyle.Render("DSA Sheet") + "  " + topicStyle.Render(header) + "\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View() + "\n")
	}

	if m.submitting {
		b.WriteString("\n" + pendingStyle.Render("Authenticating...") + "\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("enter submit • tab next field • ctrl+t switch sign-in/sign-up • ctrl+c quit"))
	return b.String()
}
