package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/profile"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateSetup, constants.StateInput, constants.StateCaptureSource, constants.StateBodyNote:
		parts := []string{m.form.View()}
		if m.formError != "" {
			parts = append(parts, "", dangerStyle.Render(m.formError))
		}
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	case constants.StateConfirmDiscard:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Render("Discard this analysis without logging it?"),
			"",
			"y to discard, n to keep it",
		))

	case constants.StateResult:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.resultModel.View(),
			m.help.View(m),
		))
	}

	var body string
	switch m.state {
	case constants.StateHome:
		body = m.homeModel.View()
	case constants.StateDiary:
		body = m.diaryModel.View()
	case constants.StateBody:
		body = m.bodyModel.View()
	case constants.StateSettings:
		body = m.viewSettings()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		body,
		"",
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	tabs := []struct {
		name  string
		state constants.SessionState
	}{
		{"Home", constants.StateHome},
		{"Diary", constants.StateDiary},
		{"Body", constants.StateBody},
		{"Settings", constants.StateSettings},
	}

	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := inactiveTabStyle
		if m.state == t.state {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(t.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewSettings() string {
	if !m.profile.SetupDone {
		return warningStyle.Render("No profile yet, press e to set one up")
	}

	lines := []string{
		successStyle.Render("Profile"),
		fmt.Sprintf("  Gender     %s", m.profile.Gender),
		fmt.Sprintf("  Weight     %.1f kg", m.profile.WeightKg),
		fmt.Sprintf("  Height     %.0f cm", m.profile.HeightCm),
		fmt.Sprintf("  Goal       %s", m.profile.Goal),
		fmt.Sprintf("  Lifestyle  %s", m.profile.Lifestyle),
	}

	if bmi, err := profile.BMI(m.profile.HeightCm, m.profile.WeightKg); err == nil {
		lines = append(lines, fmt.Sprintf("  BMI        %.1f (%s)", bmi, profile.BMICategory(bmi)))
	}

	target := profile.TargetCalories(m.profile)
	macros := profile.TargetMacros(target, m.profile.Goal)
	lines = append(lines,
		"",
		successStyle.Render("Daily targets"),
		fmt.Sprintf("  Calories   %d kcal", target),
		fmt.Sprintf("  Protein    %dg", macros.Protein),
		fmt.Sprintf("  Carbs      %dg", macros.Carbs),
		fmt.Sprintf("  Fat        %dg", macros.Fat),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
