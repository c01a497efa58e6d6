package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/intake/internal/capture"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/ledger"
	"github.com/julianstephens/intake/internal/models"
	"github.com/julianstephens/intake/internal/profile"
	"github.com/julianstephens/intake/internal/storage"
	"github.com/julianstephens/intake/internal/tui/components/bodylog"
	"github.com/julianstephens/intake/internal/tui/components/diary"
	"github.com/julianstephens/intake/internal/tui/components/home"
	"github.com/julianstephens/intake/internal/tui/components/result"
)

type Model struct {
	store      storage.Provider
	controller *capture.Controller
	camera     *capture.Camera
	profile    models.Profile

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	homeModel   home.Model
	resultModel result.Model
	diaryModel  diary.Model
	bodyModel   bodylog.Model

	form       *huh.Form
	setupForm  *SetupFormModel
	manualForm *ManualFormModel
	sourceForm *SourceFormModel
	bodyForm   *BodyFormModel

	formError string
	quitting  bool
	width     int
	height    int
}

func NewModel(store storage.Provider, analyzer capture.Analyzer) Model {
	today := time.Now().Format(constants.DateFormat)
	entries, _ := store.GetEntriesForDay(today)
	bodyLogs, _ := store.GetBodyLogs()
	p, _ := store.GetProfile()

	lg := ledger.New(entries...)
	controller := capture.NewController(analyzer, lg)

	target := 0
	var macros models.Macros
	if p.SetupDone {
		target = profile.TargetCalories(p)
		macros = profile.TargetMacros(target, p.Goal)
	}

	hm := home.New(target, macros)
	hm.SetTotals(lg.Totals(), lg.FoodCount())
	dm := diary.New(today, entries)

	m := Model{
		store:       store,
		controller:  controller,
		camera:      capture.NewCamera(nil),
		profile:     p,
		state:       constants.StateHome,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		homeModel:   hm,
		resultModel: result.New(),
		diaryModel:  dm,
		bodyModel:   bodylog.New(bodyLogs),
	}

	// First run goes straight to setup
	if !p.SetupDone {
		m.setupForm = &SetupFormModel{
			Gender:    constants.GenderMale,
			Goal:      constants.GoalMaintain,
			Lifestyle: constants.LifestyleGeneral,
		}
		m.form = NewSetupForm(m.setupForm)
		m.state = constants.StateSetup
	}

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHome:
		keys = append(keys, m.keys.Capture, m.keys.Manual)
	case constants.StateDiary:
		keys = append(keys, m.keys.Delete)
	case constants.StateBody:
		keys = append(keys, m.keys.Note)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	case constants.StateResult:
		keys = append(keys, m.keys.Enter, m.keys.Retake, m.keys.Discard)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateHome:
		actions = []key.Binding{m.keys.Capture, m.keys.Manual}
	case constants.StateDiary:
		actions = []key.Binding{m.keys.Delete}
	case constants.StateBody:
		actions = []key.Binding{m.keys.Note}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	case constants.StateResult:
		actions = []key.Binding{m.keys.Retake, m.keys.Discard, m.keys.Manual}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.controller.Events())}
	if m.form != nil {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

// refreshDay reloads today's confirmed entries and body logs into the
// dashboard and diary.
func (m *Model) refreshDay() {
	today := time.Now().Format(constants.DateFormat)
	entries, err := m.store.GetEntriesForDay(today)
	if err != nil {
		return
	}
	lg := ledger.New(entries...)
	m.homeModel.SetTotals(lg.Totals(), lg.FoodCount())
	m.diaryModel.SetEntries(today, entries)

	if logs, err := m.store.GetBodyLogs(); err == nil {
		m.bodyModel.SetLogs(logs)
	}
}

// refreshTargets recomputes the daily targets after a profile change.
func (m *Model) refreshTargets() {
	if !m.profile.SetupDone {
		return
	}
	target := profile.TargetCalories(m.profile)
	m.homeModel.SetTargets(target, profile.TargetMacros(target, m.profile.Goal))
}
