package capture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/intake/internal/analysis"
	"github.com/julianstephens/intake/internal/ledger"
	"github.com/julianstephens/intake/internal/models"
)

// gateAnalyzer blocks each Analyze call until the matching gate channel
// receives its outcome, so tests control resolution order exactly.
type gateAnalyzer struct {
	mu    sync.Mutex
	gates []chan analysis.Outcome
}

func (a *gateAnalyzer) Analyze(ctx context.Context, imageJPEG []byte) analysis.Outcome {
	a.mu.Lock()
	gate := make(chan analysis.Outcome, 1)
	a.gates = append(a.gates, gate)
	a.mu.Unlock()
	return <-gate
}

// gate returns the n-th call's gate, waiting for the call to start.
func (a *gateAnalyzer) gate(t *testing.T, n int) chan analysis.Outcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		a.mu.Lock()
		if len(a.gates) > n {
			g := a.gates[n]
			a.mu.Unlock()
			return g
		}
		a.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("analyze call %d never started", n)
	return nil
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func waitEvent(t *testing.T, events <-chan Event, kind EventKind) Event {
	t.Helper()
	for {
		select {
		case ev := <-events:
			if ev.Kind == kind {
				return ev
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event kind %d", kind)
		}
	}
}

func estimate(name string, calories int) models.Estimate {
	return models.Estimate{Name: name, Calories: calories, CapturedAt: time.Now()}
}

func TestCaptureResolvesAndConfirms(t *testing.T) {
	a := &gateAnalyzer{}
	l := ledger.New()
	c := NewController(a, l)

	id := c.Capture(context.Background(), BytesSource{Data: testJPEG(t)})
	waitEvent(t, c.Events(), EventCaptureStarted)
	if c.State() != StatePending {
		t.Fatalf("state = %d, want StatePending", c.State())
	}

	a.gate(t, 0) <- analysis.Success(estimate("Pasta", 600))
	ev := waitEvent(t, c.Events(), EventAnalysisResolved)
	if ev.Session != id {
		t.Errorf("resolved session = %d, want %d", ev.Session, id)
	}
	if c.State() != StateResolved {
		t.Fatalf("state = %d, want StateResolved", c.State())
	}

	entry, err := c.Confirm()
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if entry.Estimate.Name != "Pasta" {
		t.Errorf("confirmed entry = %+v", entry)
	}
	if l.Len() != 1 {
		t.Errorf("ledger length = %d, want exactly 1", l.Len())
	}
	if c.State() != StateIdle {
		t.Errorf("state after confirm = %d, want StateIdle", c.State())
	}
	waitEvent(t, c.Events(), EventConfirmed)
}

func TestSupersededSessionResultIsDiscarded(t *testing.T) {
	a := &gateAnalyzer{}
	l := ledger.New()
	c := NewController(a, l)
	img := testJPEG(t)

	c.Capture(context.Background(), BytesSource{Data: img})
	a.gate(t, 0) // ensure session A's analyze is in flight before superseding

	idB := c.Capture(context.Background(), BytesSource{Data: img})
	gateB := a.gate(t, 1)

	// Session B resolves first, then A's stale result arrives late.
	gateB <- analysis.Success(estimate("Current", 100))
	ev := waitEvent(t, c.Events(), EventAnalysisResolved)
	if ev.Session != idB {
		t.Fatalf("resolved session = %d, want %d", ev.Session, idB)
	}

	a.gate(t, 0) <- analysis.Success(estimate("Stale", 999))
	time.Sleep(50 * time.Millisecond) // give the stale path time to (not) apply

	outcome, ok := c.Outcome()
	if !ok {
		t.Fatal("expected a resolved outcome")
	}
	est, _ := outcome.Estimate()
	if est.Name != "Current" {
		t.Errorf("stale result overwrote state: %q", est.Name)
	}
}

func TestSupersededSessionDiscardedRegardlessOfOrder(t *testing.T) {
	a := &gateAnalyzer{}
	l := ledger.New()
	c := NewController(a, l)
	img := testJPEG(t)

	c.Capture(context.Background(), BytesSource{Data: img})
	gateA := a.gate(t, 0)
	idB := c.Capture(context.Background(), BytesSource{Data: img})
	gateB := a.gate(t, 1)

	// A resolves before B this time; it is already superseded.
	gateA <- analysis.Success(estimate("Stale", 999))
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Outcome(); ok {
		t.Fatal("stale resolution must not produce a current outcome")
	}
	if c.State() != StatePending {
		t.Fatalf("state = %d, want StatePending while B in flight", c.State())
	}

	gateB <- analysis.Success(estimate("Current", 100))
	ev := waitEvent(t, c.Events(), EventAnalysisResolved)
	if ev.Session != idB {
		t.Errorf("resolved session = %d, want %d", ev.Session, idB)
	}
}

func TestConfirmGating(t *testing.T) {
	a := &gateAnalyzer{}
	l := ledger.New()
	c := NewController(a, l)

	// Idle: nothing to confirm
	if _, err := c.Confirm(); err != ErrNotResolved {
		t.Errorf("Confirm() while idle error = %v, want ErrNotResolved", err)
	}

	// Pending: still nothing to confirm
	c.Capture(context.Background(), BytesSource{Data: testJPEG(t)})
	gate := a.gate(t, 0)
	if _, err := c.Confirm(); err != ErrNotResolved {
		t.Errorf("Confirm() while pending error = %v, want ErrNotResolved", err)
	}

	// Failure: rejected
	gate <- analysis.Failure(analysis.ErrTimeout, "deadline elapsed")
	waitEvent(t, c.Events(), EventAnalysisResolved)
	if _, err := c.Confirm(); err != ErrNotConfirmable {
		t.Errorf("Confirm() on failure error = %v, want ErrNotConfirmable", err)
	}
	if l.Len() != 0 {
		t.Errorf("ledger length = %d, want 0 after rejected confirms", l.Len())
	}
}

func TestRetakeSupersedesAndChangesState(t *testing.T) {
	a := &gateAnalyzer{}
	c := NewController(a, ledger.New())

	c.Capture(context.Background(), BytesSource{Data: testJPEG(t)})
	gate := a.gate(t, 0)

	c.Retake()
	if c.State() != StateCapturing {
		t.Errorf("state after Retake = %d, want StateCapturing", c.State())
	}

	gate <- analysis.Success(estimate("Stale", 500))
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Outcome(); ok {
		t.Error("retaken session's late result must be ignored")
	}
}

func TestDiscardReturnsToIdle(t *testing.T) {
	a := &gateAnalyzer{}
	c := NewController(a, ledger.New())

	c.Capture(context.Background(), BytesSource{Data: testJPEG(t)})
	a.gate(t, 0)
	c.Discard()
	if c.State() != StateIdle {
		t.Errorf("state after Discard = %d, want StateIdle", c.State())
	}
}

func TestAcquisitionFailureResolvesAsFailure(t *testing.T) {
	a := &gateAnalyzer{}
	c := NewController(a, ledger.New())

	c.Capture(context.Background(), FileSource{Path: "/nonexistent/image.jpg"})
	ev := waitEvent(t, c.Events(), EventAnalysisResolved)
	if ev.Outcome.IsSuccess() {
		t.Error("acquisition failure must resolve as a failure outcome")
	}
}

func TestConfirmableRule(t *testing.T) {
	tests := []struct {
		name    string
		outcome analysis.Outcome
		want    bool
	}{
		{
			name:    "valid success",
			outcome: analysis.Success(estimate("Rice", 200)),
			want:    true,
		},
		{
			name:    "zero calories still confirmable",
			outcome: analysis.Success(estimate("Water", 0)),
			want:    true,
		},
		{
			name:    "negative calories rejected",
			outcome: analysis.Success(estimate("Broken", -5)),
			want:    false,
		},
		{
			name:    "empty name rejected",
			outcome: analysis.Success(estimate("", 100)),
			want:    false,
		},
		{
			name:    "failure rejected",
			outcome: analysis.Failure(analysis.ErrNetwork, "down"),
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confirmable(tt.outcome); got != tt.want {
				t.Errorf("Confirmable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCameraExclusiveOwnership(t *testing.T) {
	cam := NewCamera([]string{"true"})

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := cam.Open(); err != ErrCameraBusy {
		t.Errorf("second Open() error = %v, want ErrCameraBusy", err)
	}

	cam.Stop()
	if cam.IsOpen() {
		t.Error("camera still open after Stop")
	}
	if err := cam.Open(); err != nil {
		t.Errorf("Open() after Stop error = %v", err)
	}

	cam.Stop()
	cam.Stop() // idempotent
	if _, err := cam.Acquire(context.Background()); err != ErrCameraClosed {
		t.Errorf("Acquire() on closed camera error = %v, want ErrCameraClosed", err)
	}
}
