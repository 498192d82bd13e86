package sim

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
)

func startTestEngine(t *testing.T, opts ...Option) (*Engine, chan time.Time) {
	t.Helper()
	ticks := make(chan time.Time)
	opts = append(opts, WithTicks(ticks))
	engine, err := StartSession(catalog.Load(), "febrile_seizure", 1, zap.NewNop(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return engine, ticks
}

func feed(ticks chan time.Time, n int) {
	for i := 0; i < n; i++ {
		ticks <- time.Time{}
	}
}

func TestEngineTicksAdvanceSession(t *testing.T) {
	engine, ticks := startTestEngine(t)
	defer engine.Close()

	feed(ticks, 10)
	if got := engine.Snapshot().TimeElapsed; got != 10 {
		t.Errorf("TimeElapsed = %d, want 10", got)
	}
}

func TestPausePreservesStateExactly(t *testing.T) {
	engine, ticks := startTestEngine(t)
	defer engine.Close()

	feed(ticks, 7)
	engine.Pause()
	paused := engine.Snapshot()

	feed(ticks, 20)
	if got := engine.Snapshot(); got.TimeElapsed != paused.TimeElapsed || got.StageTime != paused.StageTime {
		t.Errorf("paused session advanced: %+v -> %+v", paused, got)
	}

	engine.Resume()
	feed(ticks, 3)
	if got := engine.Snapshot().TimeElapsed; got != 10 {
		t.Errorf("TimeElapsed = %d after resume, want 10", got)
	}
}

func TestApplyIgnoredWhilePaused(t *testing.T) {
	engine, ticks := startTestEngine(t)
	defer engine.Close()

	feed(ticks, 2)
	engine.Pause()
	if r := engine.ApplyIntervention("oxygen_support"); !r.Ignored {
		t.Errorf("Apply while paused = %+v, want ignored", r)
	}

	engine.Resume()
	if r := engine.ApplyIntervention("oxygen_support"); r.Ignored {
		t.Errorf("Apply after resume = %+v, want resolved", r)
	}
}

// Closing must tear every timer down: nothing may mutate a discarded
// session, and a tick source that keeps firing must find no listener.
func TestCloseTearsDownTimers(t *testing.T) {
	engine, ticks := startTestEngine(t)

	feed(ticks, 5)
	engine.Close()
	final := engine.Snapshot()

	select {
	case ticks <- time.Time{}:
		t.Fatal("tick consumed after Close; the loop is still alive")
	case <-time.After(50 * time.Millisecond):
	}

	if got := engine.Snapshot(); got.TimeElapsed != final.TimeElapsed {
		t.Errorf("session mutated after Close: %d -> %d", final.TimeElapsed, got.TimeElapsed)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	engine, _ := startTestEngine(t)
	engine.Close()
	engine.Close()
}

func TestOnCompleteFiresWithFinalScore(t *testing.T) {
	done := make(chan Result, 1)
	engine, ticks := startTestEngine(t, WithOnComplete(func(sess Session, result Result) {
		done <- result
	}))
	defer engine.Close()

	// Sum of the case's stage limits bounds completion.
	feed(ticks, 430)

	select {
	case result := <-done:
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("Score = %d, want within [0,100]", result.Score)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onComplete never fired")
	}

	snap := engine.Snapshot()
	if !snap.Completed || snap.Score == nil {
		t.Errorf("snapshot = completed %v score %v, want terminal state", snap.Completed, snap.Score)
	}
}

type explainFunc func(ExplainRequest) (string, error)

func (f explainFunc) Explain(_ context.Context, req ExplainRequest) (string, error) {
	return f(req)
}

func TestExplainerReceivesStageContext(t *testing.T) {
	requests := make(chan ExplainRequest, 1)
	engine, ticks := startTestEngine(t, WithExplainer(explainFunc(func(req ExplainRequest) (string, error) {
		select {
		case requests <- req:
		default:
		}
		return "guidance text", nil
	})))
	defer engine.Close()

	feed(ticks, 1)
	engine.ApplyIntervention("oxygen_support")

	select {
	case req := <-requests:
		if req.InterventionID != "oxygen_support" || req.Stage != 1 {
			t.Errorf("request = %+v, want oxygen_support at stage 1", req)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("explainer never called")
	}
}
