package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dsa_sheet/internal/client"
	"dsa_sheet/internal/domain/model"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type topicsFetchedMsg []model.Topic
type problemsFetchedMsg []model.Problem
type progressFetchedMsg []model.Progress

type fetchFailedMsg struct{ err error }

// toggleResultMsg is the server's answer to one completion toggle. The UI
// does not update optimistically; the row stays pending until this arrives.
type toggleResultMsg struct {
	problemID string
	progress  *model.Progress
	err       error
}

// signOutMsg tells the app model to clear the session and return to login.
type signOutMsg struct{}

// row addresses one visible line: a topic header (problemIdx == -1) or a
// problem under an expanded topic.
type row struct {
	topicIdx   int
	problemIdx int
}

type dashboardModel struct {
	api   *client.Client
	email string
	token string

	topics   []model.Topic
	problems []model.Problem
	progress []model.Progress
	fetched  int

	sheet   Sheet
	loading bool

	expanded      map[string]bool
	cursor        int
	pendingToggle map[string]bool

	spinner spinner.Model
	bar     progress.Model
	errMsg  string
}

func newDashboardModel(api *client.Client, session *client.Session) dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return dashboardModel{
		api:           api,
		email:         session.User.Email,
		token:         session.Token,
		loading:       true,
		expanded:      map[string]bool{},
		pendingToggle: map[string]bool{},
		spinner:       sp,
		bar:           progress.New(progress.WithDefaultGradient()),
	}
}

// Init fires the three catalog/progress fetches concurrently; the view stays
// on the spinner until all of them land.
func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchTopics(),
		m.fetchProblems(),
		m.fetchProgress(),
	)
}

func (m dashboardModel) fetchTopics() tea.Cmd {
	api, token := m.api, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		topics, err := api.Topics(ctx, token)
		if err != nil {
			return fetchFailedMsg{err}
		}
		return topicsFetchedMsg(topics)
	}
}

func (m dashboardModel) fetchProblems() tea.Cmd {
	api, token := m.api, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		problems, err := api.Problems(ctx, token)
		if err != nil {
			return fetchFailedMsg{err}
		}
		return problemsFetchedMsg(problems)
	}
}

func (m dashboardModel) fetchProgress() tea.Cmd {
	api, token := m.api, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		progressRows, err := api.Progress(ctx, token)
		if err != nil {
			return fetchFailedMsg{err}
		}
		return progressFetchedMsg(progressRows)
	}
}

func (m dashboardModel) toggle(problemID string, completed bool) tea.Cmd {
	api, token := m.api, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pr, err := api.UpdateProgress(ctx, token, problemID, completed)
		return toggleResultMsg{problemID: problemID, progress: pr, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case topicsFetchedMsg:
		m.topics = msg
		m.fetched++
		return m.maybeBuild(), nil
	case problemsFetchedMsg:
		m.problems = msg
		m.fetched++
		return m.maybeBuild(), nil
	case progressFetchedMsg:
		m.progress = msg
		m.fetched++
		return m.maybeBuild(), nil

	case fetchFailedMsg:
		m.loading = false
		m.errMsg = msg.err.Error()
		return m, nil

	case toggleResultMsg:
		delete(m.pendingToggle, msg.problemID)
		if msg.err != nil {
			// Pre-toggle state stays; just surface the failure.
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.sheet.SetCompleted(msg.problemID, msg.progress.Completed, msg.progress.ID)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// maybeBuild joins the collections once all three fetches have completed.
func (m dashboardModel) maybeBuild() dashboardModel {
	if m.fetched < 3 {
		return m
	}
	m.sheet = BuildSheet(m.topics, m.problems, m.progress)
	m.loading = false
	// First two topics start expanded.
	for i, group := range m.sheet.Topics {
		if i < 2 {
			m.expanded[group.ID] = true
		}
	}
	return m
}

func (m dashboardModel) visibleRows() []row {
	var rows []row
	for ti, group := range m.sheet.Topics {
		rows = append(rows, row{topicIdx: ti, problemIdx: -1})
		if !m.expanded[group.ID] {
			continue
		}
		for pi := range group.Problems {
			rows = append(rows, row{topicIdx: ti, problemIdx: pi})
		}
	}
	return rows
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	rows := m.visibleRows()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor >= len(rows) {
			break
		}
		current := rows[m.cursor]
		group := &m.sheet.Topics[current.topicIdx]
		if current.problemIdx < 0 {
			m.expanded[group.ID] = !m.expanded[group.ID]
			break
		}
		item := group.Problems[current.problemIdx]
		if m.pendingToggle[item.ID] {
			break // one in-flight toggle per problem
		}
		m.pendingToggle[item.ID] = true
		return m, m.toggle(item.ID, !item.Completed)
	case "s":
		return m, func() tea.Msg { return signOutMsg{} }
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("DSA Sheet") + "  " + subtleStyle.Render(m.email) + "\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading your progress...\n")
		return b.String()
	}

	percent := 0.0
	if m.sheet.TotalProblems > 0 {
		percent = float64(m.sheet.TotalCompleted) / float64(m.sheet.TotalProblems)
	}
	b.WriteString(fmt.Sprintf("%d / %d solved\n", m.sheet.TotalCompleted, m.sheet.TotalProblems))
	b.WriteString(m.bar.ViewAs(percent) + "\n\n")

	rows := m.visibleRows()
	for i, r := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		group := m.sheet.Topics[r.topicIdx]

		if r.problemIdx < 0 {
			chevron := "▸"
			if m.expanded[group.ID] {
				chevron = "▾"
			}
			b.WriteString(fmt.Sprintf("%s%s %s %s\n",
				cursor,
				chevron,
				topicStyle.Render(group.Name),
				subtleStyle.Render(fmt.Sprintf("(%d/%d)", group.CompletedCount, len(group.Problems))),
			))
			continue
		}

		item := group.Problems[r.problemIdx]
		check := "○"
		if item.Completed {
			check = completedStyle.Render("●")
		}
		if m.pendingToggle[item.ID] {
			check = pendingStyle.Render("…")
		}
		b.WriteString(fmt.Sprintf("%s   %s %s %s\n", cursor, check, item.Title, difficultyBadge(item.Difficulty)))
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter/space toggle • s sign out • q quit"))
	return b.String()
}
