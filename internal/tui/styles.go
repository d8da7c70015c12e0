package tui

import (
	"dsa_sheet/internal/domain/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	topicStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	easyBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mediumBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	hardBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

func difficultyBadge(d model.ProblemDifficulty) string {
	switch d {
	case model.DifficultyEasy:
		return easyBadge.Render("[Easy]")
	case model.DifficultyMedium:
		return mediumBadge.Render("[Medium]")
	case model.DifficultyHard:
		return hardBadge.Render("[Hard]")
	default:
		return subtleStyle.Render("[?]")
	}
}
