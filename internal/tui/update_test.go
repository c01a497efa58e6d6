package tui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/intake/internal/analysis"
	"github.com/julianstephens/intake/internal/capture"
	"github.com/julianstephens/intake/internal/storage"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, imageJPEG []byte) analysis.Outcome {
	return analysis.Failure(analysis.ErrUnknown, "unused")
}

// blockedSource never yields an image until released, keeping a capture
// session pending for as long as the test needs it.
type blockedSource struct {
	release chan struct{}
}

func (s blockedSource) Acquire(ctx context.Context) ([]byte, error) {
	<-s.release
	return nil, context.Canceled
}

func (s blockedSource) Description() string { return "blocked" }

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "intake.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewModel(store, stubAnalyzer{})
}

func TestStaleResolutionEventDoesNotReachResultView(t *testing.T) {
	m := newTestModel(t)

	src := blockedSource{release: make(chan struct{})}
	t.Cleanup(func() { close(src.release) })

	first := m.controller.Capture(context.Background(), src)
	m.controller.Capture(context.Background(), src) // supersedes first
	m.resultModel.StartPending()

	stale := capture.Event{
		Kind:    capture.EventAnalysisResolved,
		Session: first,
		Outcome: analysis.Failure(analysis.ErrUnknown, "late arrival"),
	}
	updated, _ := m.handleCaptureEvent(stale)
	mm := updated.(Model)
	if !mm.resultModel.Pending() {
		t.Fatal("superseded session's resolution updated the result view")
	}

	current := capture.Event{
		Kind:    capture.EventAnalysisResolved,
		Session: mm.controller.Session(),
		Outcome: analysis.Failure(analysis.ErrUnknown, "current"),
	}
	updated, _ = mm.handleCaptureEvent(current)
	mm = updated.(Model)
	if mm.resultModel.Pending() {
		t.Error("current session's resolution did not update the result view")
	}
}
