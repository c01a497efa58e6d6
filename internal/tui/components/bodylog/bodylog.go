package bodylog

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(4)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(1, 2)
)

// Model lists recorded body logs, newest last.
type Model struct {
	logs []models.BodyLog

	width  int
	height int
}

func New(logs []models.BodyLog) Model {
	return Model{logs: logs}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetLogs(logs []models.BodyLog) {
	m.logs = logs
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	lines := []string{titleStyle.Render("Body logs")}

	if len(m.logs) == 0 {
		lines = append(lines, dateStyle.Render("  No body logs yet"))
	}

	// Show the most recent logs that fit
	logs := m.logs
	if max := 8; len(logs) > max {
		logs = logs[len(logs)-max:]
	}
	for _, l := range logs {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			dateStyle.Render(l.TakenAt.Format(constants.DateFormat+" "+constants.ClockFormat)), l.ImagePath))
		if l.Note != "" {
			lines = append(lines, noteStyle.Render(l.Note))
		}
	}

	lines = append(lines, hintStyle.Render("n to add a body log"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
