package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/intake/internal/analysis"
	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/ledger"
	"github.com/julianstephens/intake/internal/logger"
	"github.com/julianstephens/intake/internal/models"
)

// State is the capture flow's position.
type State int

const (
	StateIdle State = iota
	StateCapturing
	StatePending
	StateResolved
)

// EventKind tags controller events.
type EventKind int

const (
	EventCaptureStarted EventKind = iota
	EventAnalysisResolved
	EventConfirmed
)

// Event is emitted to the shell layer; the controller renders nothing
// itself.
type Event struct {
	Kind    EventKind
	Session uint64
	Outcome analysis.Outcome   // set for EventAnalysisResolved
	Entry   models.LedgerEntry // set for EventConfirmed
}

var (
	// ErrNotResolved is returned when Confirm is called while no resolved
	// outcome is current (still pending, or nothing captured).
	ErrNotResolved = errors.New("no resolved analysis to confirm")
	// ErrNotConfirmable is returned when the current outcome is a failure
	// or an estimate that fails the validity rule.
	ErrNotConfirmable = errors.New("current outcome is not confirmable")
)

// Analyzer is the one operation the controller needs from the analysis
// layer.
type Analyzer interface {
	Analyze(ctx context.Context, imageJPEG []byte) analysis.Outcome
}

// Controller orchestrates acquisition, preprocessing and analysis for one
// capture session at a time.
//
// Sessions are numbered by a monotonically increasing counter. Starting a
// new capture supersedes the previous session: when a superseded
// session's analysis eventually resolves, its result is compared by
// session ID and dropped without touching state. There is no true
// parallelism to guard against beyond that single current-session check.
type Controller struct {
	mu       sync.Mutex
	analyzer Analyzer
	ledger   *ledger.Ledger

	state   State
	session uint64
	outcome *analysis.Outcome
	image   []byte // preprocessed image of the current session
	started time.Time

	events chan Event
}

// NewController creates a controller appending confirmed entries to the
// given ledger.
func NewController(analyzer Analyzer, l *ledger.Ledger) *Controller {
	return &Controller{
		analyzer: analyzer,
		ledger:   l,
		state:    StateIdle,
		events:   make(chan Event, 16),
	}
}

// Events returns the stream the shell subscribes to. Events are dropped,
// not blocked on, if the subscriber falls behind.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns the current session ID.
func (c *Controller) Session() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Outcome returns the resolved outcome of the current session, if any.
func (c *Controller) Outcome() (analysis.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateResolved || c.outcome == nil {
		return analysis.Outcome{}, false
	}
	return *c.outcome, true
}

// Image returns the preprocessed image of the current session, if any.
func (c *Controller) Image() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// Capture starts a new session from the given source and returns its ID
// without blocking on acquisition or analysis. Any pending session is
// superseded.
func (c *Controller) Capture(ctx context.Context, source Source) uint64 {
	c.mu.Lock()
	c.session++
	id := c.session
	c.state = StatePending
	c.outcome = nil
	c.image = nil
	c.started = time.Now()
	c.mu.Unlock()

	logger.Info("Capture started", "session", id, "source", source.Description())
	c.emit(Event{Kind: EventCaptureStarted, Session: id})

	go c.run(ctx, id, source)
	return id
}

// run executes acquisition, preprocessing and analysis for one session.
func (c *Controller) run(ctx context.Context, id uint64, source Source) {
	raw, err := source.Acquire(ctx)
	if err != nil {
		c.resolve(id, nil, analysis.Failure(analysis.ErrUnknown, fmt.Sprintf("image acquisition failed: %v", err)))
		return
	}

	resized, err := Preprocess(raw)
	if err != nil {
		c.resolve(id, nil, analysis.Failure(analysis.ErrUnknown, fmt.Sprintf("image preprocessing failed: %v", err)))
		return
	}

	outcome := c.analyzer.Analyze(ctx, resized)
	c.resolve(id, resized, outcome)
}

// resolve applies a session's result, unless the session has been
// superseded in the meantime.
func (c *Controller) resolve(id uint64, image []byte, outcome analysis.Outcome) {
	c.mu.Lock()
	if id != c.session {
		c.mu.Unlock()
		logger.Debug("Discarding stale analysis result", "session", id, "current", c.session)
		return
	}
	c.state = StateResolved
	c.outcome = &outcome
	if image != nil {
		c.image = image
	}
	elapsed := time.Since(c.started)
	c.mu.Unlock()

	logger.Info("Analysis resolved", "session", id, "success", outcome.IsSuccess(), "elapsed", elapsed)
	c.emit(Event{Kind: EventAnalysisResolved, Session: id, Outcome: outcome})
}

// Confirmable reports whether an outcome may be confirmed into the
// ledger: a success with non-negative calories and a non-empty name. The
// coercion placeholder counts as a name; pending and failed outcomes
// never qualify.
func Confirmable(o analysis.Outcome) bool {
	est, ok := o.Estimate()
	return ok && est.Calories >= 0 && est.Name != ""
}

// Confirm appends the current resolved estimate to the ledger and
// returns the new entry, transitioning back to Idle. Confirming while
// pending, failed, or invalid is rejected.
func (c *Controller) Confirm() (models.LedgerEntry, error) {
	c.mu.Lock()
	if c.state != StateResolved || c.outcome == nil {
		c.mu.Unlock()
		return models.LedgerEntry{}, ErrNotResolved
	}
	if !Confirmable(*c.outcome) {
		c.mu.Unlock()
		return models.LedgerEntry{}, ErrNotConfirmable
	}

	est, _ := c.outcome.Estimate()
	entry := models.LedgerEntry{
		ID:       uuid.New().String(),
		Estimate: est,
		Kind:     constants.EntryFood,
		LoggedAt: time.Now(),
	}
	c.ledger.Append(entry)
	id := c.session
	c.state = StateIdle
	c.outcome = nil
	c.image = nil
	c.mu.Unlock()

	logger.Info("Entry confirmed", "session", id, "food", entry.Estimate.Name, "calories", entry.Estimate.Calories)
	c.emit(Event{Kind: EventConfirmed, Session: id, Entry: entry})
	return entry, nil
}

// Retake abandons the current session and returns to Capturing. A still
// in-flight analysis is not aborted, only ignored when it resolves; the
// request is side-effect-free on the server.
func (c *Controller) Retake() {
	c.supersede(StateCapturing)
}

// Discard abandons the current session and returns to Idle.
func (c *Controller) Discard() {
	c.supersede(StateIdle)
}

func (c *Controller) supersede(next State) {
	c.mu.Lock()
	c.session++
	c.state = next
	c.outcome = nil
	c.image = nil
	c.mu.Unlock()
}

func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		logger.Warn("Event dropped, subscriber too slow", "kind", ev.Kind, "session", ev.Session)
	}
}
