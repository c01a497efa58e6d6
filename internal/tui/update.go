package tui

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/capture"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/logger"
	"github.com/julianstephens/intake/internal/models"
	"github.com/julianstephens/intake/internal/tui/components/diary"
)

// captureEventMsg carries one controller event into the bubbletea loop.
type captureEventMsg struct {
	event capture.Event
}

// waitForEvent blocks on the controller stream and must be re-armed
// after every received event.
func waitForEvent(events <-chan capture.Event) tea.Cmd {
	return func() tea.Msg {
		return captureEventMsg{event: <-events}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		contentHeight := msg.Height - 6
		m.homeModel.SetSize(msg.Width, contentHeight)
		m.resultModel.SetSize(msg.Width, contentHeight)
		m.diaryModel.SetSize(msg.Width, contentHeight)
		m.bodyModel.SetSize(msg.Width, contentHeight)
		return m, nil

	case captureEventMsg:
		return m.handleCaptureEvent(msg.event)

	case diary.DeleteEntryMsg:
		if err := m.store.DeleteEntry(msg.ID); err != nil {
			logger.Error("Failed to delete entry", "id", msg.ID, "error", err)
		}
		m.refreshDay()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.resultModel, cmd = m.resultModel.Update(msg)
		return m, cmd
	}

	// Form states hand every remaining message to the active form.
	switch m.state {
	case constants.StateSetup, constants.StateInput, constants.StateCaptureSource, constants.StateBodyNote:
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleCaptureEvent(ev capture.Event) (tea.Model, tea.Cmd) {
	rearm := waitForEvent(m.controller.Events())

	switch ev.Kind {
	case capture.EventCaptureStarted:
		// The view already switched when the capture was submitted.
		return m, rearm

	case capture.EventAnalysisResolved:
		// A retake or discard racing the resolution can let a superseded
		// session's event slip through; the session ID is authoritative.
		if ev.Session != m.controller.Session() {
			return m, rearm
		}
		m.camera.Stop()
		m.resultModel.SetOutcome(ev.Outcome)
		return m, rearm

	case capture.EventConfirmed:
		// Persistence happens where Confirm is called; nothing to do.
		return m, rearm
	}
	return m, rearm
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		return m.abortForm()
	}
	return m, cmd
}

func (m Model) abortForm() (tea.Model, tea.Cmd) {
	// First-run setup cannot be escaped: there is nothing to fall back to.
	if m.state == constants.StateSetup && !m.profile.SetupDone {
		return m.openSetupForm()
	}

	if m.state == constants.StateCaptureSource {
		m.controller.Discard()
	}

	m.form = nil
	m.formError = ""
	m.state = m.previousState
	return m, nil
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateSetup:
		return m.completeSetupForm()
	case constants.StateInput:
		return m.completeManualForm()
	case constants.StateCaptureSource:
		return m.completeSourceForm()
	case constants.StateBodyNote:
		return m.completeBodyForm()
	}
	return m, nil
}

func (m Model) completeSetupForm() (tea.Model, tea.Cmd) {
	weight, _ := strconv.ParseFloat(strings.TrimSpace(m.setupForm.Weight), 64)
	height, _ := strconv.ParseFloat(strings.TrimSpace(m.setupForm.Height), 64)

	p := models.Profile{
		Gender:    m.setupForm.Gender,
		WeightKg:  weight,
		HeightCm:  height,
		Goal:      m.setupForm.Goal,
		Lifestyle: m.setupForm.Lifestyle,
		SetupDone: true,
	}
	if !p.Valid() {
		m.formError = "Those measurements don't look plausible, please check them"
		return m.openSetupForm()
	}

	if err := m.store.SaveProfile(p); err != nil {
		logger.Error("Failed to save profile", "error", err)
		m.formError = "Could not save the profile: " + err.Error()
		return m.openSetupForm()
	}

	m.profile = p
	m.refreshTargets()
	m.form = nil
	m.formError = ""
	m.state = constants.StateHome
	return m, nil
}

func (m Model) completeManualForm() (tea.Model, tea.Cmd) {
	calories, _ := strconv.Atoi(strings.TrimSpace(m.manualForm.Calories))

	kind := constants.EntryFood
	var activity *models.ActivityDetail
	if m.manualForm.Exercise {
		kind = constants.EntryExercise
		calories = -calories
		env := m.manualForm.Environment
		if env == "" {
			env = "indoor"
		}
		duration, _ := strconv.Atoi(strings.TrimSpace(m.manualForm.Duration))
		activity = &models.ActivityDetail{Environment: env, DurationMin: duration}
	}

	now := time.Now()
	entry := models.LedgerEntry{
		ID: uuid.NewString(),
		Estimate: models.Estimate{
			Name:       strings.TrimSpace(m.manualForm.Name),
			Calories:   calories,
			Confidence: 1,
			CapturedAt: now,
		},
		Kind:     kind,
		LoggedAt: now,
		Activity: activity,
	}
	if err := m.store.AddEntry(entry); err != nil {
		logger.Error("Failed to save entry", "error", err)
	}

	m.refreshDay()
	m.form = nil
	m.formError = ""
	m.state = constants.StateHome
	return m, nil
}

func (m Model) completeSourceForm() (tea.Model, tea.Cmd) {
	var source capture.Source
	switch m.sourceForm.Source {
	case "camera":
		if err := m.camera.Open(); err != nil {
			m.formError = "The camera is already in use, release it first"
			return m.openSourceForm()
		}
		source = m.camera
	case "url":
		source = capture.URLSource{URL: strings.TrimSpace(m.sourceForm.Path)}
	default:
		source = capture.FileSource{Path: strings.TrimSpace(m.sourceForm.Path)}
	}

	m.controller.Capture(context.Background(), source)
	m.resultModel.StartPending()
	m.form = nil
	m.formError = ""
	m.state = constants.StateResult
	return m, m.resultModel.Init()
}

func (m Model) completeBodyForm() (tea.Model, tea.Cmd) {
	path := strings.TrimSpace(m.bodyForm.Image)
	if _, err := os.Stat(path); err != nil {
		m.formError = "No image found at " + path
		return m.openBodyForm()
	}

	log := models.BodyLog{
		ID:        uuid.NewString(),
		ImagePath: path,
		Note:      strings.TrimSpace(m.bodyForm.Note),
		TakenAt:   time.Now(),
	}
	if err := m.store.AddBodyLog(log); err != nil {
		logger.Error("Failed to save body log", "error", err)
	}

	m.refreshDay()
	m.form = nil
	m.formError = ""
	m.state = constants.StateBody
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.formError = ""

	if m.state == constants.StateConfirmDiscard {
		switch msg.String() {
		case "y", "Y", "enter":
			m.controller.Discard()
			m.camera.Stop()
			m.state = constants.StateHome
		case "n", "N", "esc":
			m.state = constants.StateResult
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state == constants.StateResult {
		return m.handleResultKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		m.state = nextTab(m.state)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = prevTab(m.state)
		return m, nil
	}

	switch m.state {
	case constants.StateHome:
		switch {
		case key.Matches(msg, m.keys.Capture):
			return m.openSourceForm()
		case key.Matches(msg, m.keys.Manual):
			return m.openManualForm()
		}

	case constants.StateDiary:
		var cmd tea.Cmd
		m.diaryModel, cmd = m.diaryModel.Update(msg)
		return m, cmd

	case constants.StateBody:
		if key.Matches(msg, m.keys.Note) {
			return m.openBodyForm()
		}

	case constants.StateSettings:
		if key.Matches(msg, m.keys.Edit) {
			return m.openSetupForm()
		}
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		entry, err := m.controller.Confirm()
		if err != nil {
			return m, nil
		}
		m.camera.Stop()
		if err := m.store.AddEntry(entry); err != nil {
			logger.Error("Failed to save entry", "error", err)
		}
		m.refreshDay()
		m.state = constants.StateHome
		return m, nil

	case key.Matches(msg, m.keys.Retake):
		m.controller.Retake()
		m.camera.Stop()
		return m.openSourceForm()

	case key.Matches(msg, m.keys.Manual):
		// Manual fallback is offered only after a failed analysis.
		if o, ok := m.controller.Outcome(); ok && !o.IsSuccess() {
			m.controller.Discard()
			m.camera.Stop()
			return m.openManualForm()
		}

	case key.Matches(msg, m.keys.Discard):
		if o, ok := m.controller.Outcome(); ok && o.IsSuccess() {
			// Throwing away a usable estimate deserves a second look.
			m.state = constants.StateConfirmDiscard
			return m, nil
		}
		m.controller.Discard()
		m.camera.Stop()
		m.state = constants.StateHome
	}
	return m, nil
}

func (m Model) openSetupForm() (tea.Model, tea.Cmd) {
	if m.state != constants.StateSetup {
		m.previousState = m.state
	}
	fm := &SetupFormModel{
		Gender:    constants.GenderMale,
		Goal:      constants.GoalMaintain,
		Lifestyle: constants.LifestyleGeneral,
	}
	if m.profile.SetupDone {
		fm.Gender = m.profile.Gender
		fm.Weight = strconv.FormatFloat(m.profile.WeightKg, 'f', -1, 64)
		fm.Height = strconv.FormatFloat(m.profile.HeightCm, 'f', -1, 64)
		fm.Goal = m.profile.Goal
		fm.Lifestyle = m.profile.Lifestyle
	}
	m.setupForm = fm
	m.form = NewSetupForm(fm)
	m.state = constants.StateSetup
	return m, m.form.Init()
}

func (m Model) openManualForm() (tea.Model, tea.Cmd) {
	if m.state != constants.StateInput {
		m.previousState = m.state
	}
	m.manualForm = &ManualFormModel{Environment: "indoor"}
	m.form = NewManualForm(m.manualForm)
	m.state = constants.StateInput
	return m, m.form.Init()
}

func (m Model) openSourceForm() (tea.Model, tea.Cmd) {
	if m.state != constants.StateCaptureSource {
		m.previousState = m.state
	}
	m.sourceForm = &SourceFormModel{Source: "camera"}
	m.form = NewSourceForm(m.sourceForm)
	m.state = constants.StateCaptureSource
	return m, m.form.Init()
}

func (m Model) openBodyForm() (tea.Model, tea.Cmd) {
	if m.state != constants.StateBodyNote {
		m.previousState = m.state
	}
	m.bodyForm = &BodyFormModel{}
	m.form = NewBodyForm(m.bodyForm)
	m.state = constants.StateBodyNote
	return m, m.form.Init()
}

func nextTab(s constants.SessionState) constants.SessionState {
	switch s {
	case constants.StateHome:
		return constants.StateDiary
	case constants.StateDiary:
		return constants.StateBody
	case constants.StateBody:
		return constants.StateSettings
	default:
		return constants.StateHome
	}
}

func prevTab(s constants.SessionState) constants.SessionState {
	switch s {
	case constants.StateHome:
		return constants.StateSettings
	case constants.StateDiary:
		return constants.StateHome
	case constants.StateBody:
		return constants.StateDiary
	default:
		return constants.StateBody
	}
}
