package diary

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/ledger"
	"github.com/julianstephens/intake/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	exerciseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 2)
)

// DeleteEntryMsg asks the parent to delete the selected entry.
type DeleteEntryMsg struct {
	ID string
}

// Model lists one day's confirmed entries with folded totals.
type Model struct {
	day     string
	entries []models.LedgerEntry
	cursor  int

	width  int
	height int
}

func New(day string, entries []models.LedgerEntry) Model {
	return Model{day: day, entries: entries}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetEntries replaces the listed entries, clamping the cursor.
func (m *Model) SetEntries(day string, entries []models.LedgerEntry) {
	m.day = day
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "d":
			if len(m.entries) > 0 {
				id := m.entries[m.cursor].ID
				return m, func() tea.Msg { return DeleteEntryMsg{ID: id} }
			}
		}
	}
	return m, nil
}

func formatCalories(calories int) string {
	if calories > 0 {
		return fmt.Sprintf("+%d kcal", calories)
	}
	return fmt.Sprintf("%d kcal", calories)
}

func (m Model) View() string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Diary, %s", m.day))}

	if len(m.entries) == 0 {
		lines = append(lines, entryStyle.Render("  No entries yet"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for i, e := range m.entries {
		prefix := "  "
		style := entryStyle
		if e.Kind == constants.EntryExercise {
			style = exerciseStyle
		}
		line := fmt.Sprintf("%s  %-28s %10s", e.LoggedAt.Format(constants.ClockFormat), e.Estimate.Name, formatCalories(e.Estimate.Calories))
		if e.Kind == constants.EntryExercise && e.Activity != nil {
			line += fmt.Sprintf("  (%s, %dm)", e.Activity.Environment, e.Activity.DurationMin)
		}
		if i == m.cursor {
			prefix = "> "
			style = selectedStyle
		}
		lines = append(lines, prefix+style.Render(line))
	}

	totals := ledger.New(m.entries...).Totals()
	lines = append(lines, totalStyle.Render(fmt.Sprintf("Total: %d kcal  (P %dg / C %dg / F %dg)",
		totals.Calories, totals.Macros.Protein, totals.Macros.Carbs, totals.Macros.Fat)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
