package result

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/intake/internal/analysis"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	factStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows one analysis session: a spinner while pending, the
// estimate or failure once resolved.
type Model struct {
	spinner  spinner.Model
	pending  bool
	outcome  *analysis.Outcome
	editable bool

	width  int
	height int
}

func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{spinner: s}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartPending resets the view for a fresh session.
func (m *Model) StartPending() {
	m.pending = true
	m.outcome = nil
}

// SetOutcome shows a resolved outcome.
func (m *Model) SetOutcome(o analysis.Outcome) {
	m.pending = false
	m.outcome = &o
}

// Pending reports whether analysis is still in flight.
func (m Model) Pending() bool {
	return m.pending
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.pending {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// friendlyError maps an error kind to a message the user can act on.
func friendlyError(kind analysis.ErrorKind, message string) string {
	switch kind {
	case analysis.ErrMissingCredential:
		return "No API key configured. Run 'intake key set' and try again."
	case analysis.ErrTimeout:
		return "The analysis service took too long. Check your connection and retake."
	case analysis.ErrNetwork:
		return "Could not reach the analysis service. Check your connection and retake."
	case analysis.ErrMalformedResponse:
		return "The analysis service returned something unusable. Retake or enter manually."
	default:
		if message != "" {
			return message
		}
		return "Analysis failed. Retake or enter manually."
	}
}

func (m Model) View() string {
	var content string

	switch {
	case m.pending:
		content = lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("%s Analyzing your food...", m.spinner.View()),
			"",
			hintStyle.Render("esc to discard"),
		)

	case m.outcome == nil:
		content = hintStyle.Render("Nothing captured yet. Press c to capture.")

	case m.outcome.IsSuccess():
		est, _ := m.outcome.Estimate()
		facts := lipgloss.JoinVertical(lipgloss.Left,
			factStyle.Render(fmt.Sprintf("Calories   %d kcal", est.Calories)),
			factStyle.Render(fmt.Sprintf("Protein    %dg", est.Macros.Protein)),
			factStyle.Render(fmt.Sprintf("Carbs      %dg", est.Macros.Carbs)),
			factStyle.Render(fmt.Sprintf("Fat        %dg", est.Macros.Fat)),
			factStyle.Render(fmt.Sprintf("Confidence %.0f%%", est.Confidence*100)),
		)
		parts := []string{nameStyle.Render(est.Name), facts}
		if est.Evaluation != "" {
			parts = append(parts, factStyle.Render(est.Evaluation))
		}
		parts = append(parts, "", hintStyle.Render("enter to log, r to retake, esc to discard"))
		content = lipgloss.JoinVertical(lipgloss.Center, parts...)

	default:
		kind, message, _ := m.outcome.Err()
		content = lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("Analysis failed"),
			"",
			friendlyError(kind, message),
			"",
			hintStyle.Render("r to retake, esc to discard, m for manual entry"),
		)
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
