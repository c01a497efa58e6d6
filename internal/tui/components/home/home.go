package home

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
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

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Model is the daily dashboard: folded totals against the profile's
// targets.
type Model struct {
	totals       ledger.Totals
	foodCount    int
	targetKcal   int
	targetMacros models.Macros

	calBar     progress.Model
	proteinBar progress.Model
	carbsBar   progress.Model
	fatBar     progress.Model

	width  int
	height int
}

func New(targetKcal int, targetMacros models.Macros) Model {
	newBar := func() progress.Model {
		return progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	}
	return Model{
		targetKcal:   targetKcal,
		targetMacros: targetMacros,
		calBar:       newBar(),
		proteinBar:   newBar(),
		carbsBar:     newBar(),
		fatBar:       newBar(),
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	barWidth := width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 50 {
		barWidth = 50
	}
	m.calBar.Width = barWidth
	m.proteinBar.Width = barWidth
	m.carbsBar.Width = barWidth
	m.fatBar.Width = barWidth
}

// SetTotals replaces the folded state shown by the dashboard.
func (m *Model) SetTotals(totals ledger.Totals, foodCount int) {
	m.totals = totals
	m.foodCount = foodCount
}

// SetTargets replaces the daily targets, e.g. after a profile edit.
func (m *Model) SetTargets(targetKcal int, targetMacros models.Macros) {
	m.targetKcal = targetKcal
	m.targetMacros = targetMacros
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func ratio(value, target int) float64 {
	if target <= 0 {
		return 0
	}
	r := float64(value) / float64(target)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func (m Model) barLine(label string, bar progress.Model, value, target int, unit string) string {
	stats := fmt.Sprintf(" %d/%d%s", value, target, unit)
	if value > target && target > 0 {
		stats = overStyle.Render(stats)
	} else {
		stats = valueStyle.Render(stats)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		bar.ViewAs(ratio(value, target)),
		stats,
	)
}

func (m Model) View() string {
	remaining := m.targetKcal - m.totals.Calories

	header := titleStyle.Render(fmt.Sprintf("Today, %s", time.Now().Format(constants.DateFormat)))
	summary := valueStyle.Render(fmt.Sprintf("%d meals logged, %d kcal remaining", m.foodCount, remaining))
	if remaining < 0 {
		summary = overStyle.Render(fmt.Sprintf("%d meals logged, %d kcal over target", m.foodCount, -remaining))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.barLine("Calories", m.calBar, m.totals.Calories, m.targetKcal, " kcal"),
		m.barLine("Protein", m.proteinBar, m.totals.Macros.Protein, m.targetMacros.Protein, "g"),
		m.barLine("Carbs", m.carbsBar, m.totals.Macros.Carbs, m.targetMacros.Carbs, "g"),
		m.barLine("Fat", m.fatBar, m.totals.Macros.Fat, m.targetMacros.Fat, "g"),
		"",
		summary,
	)
}
