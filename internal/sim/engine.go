package sim

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
)

// Explainer produces prose guidance for a just-resolved intervention.
// Implementations must degrade gracefully; an error here never affects the
// session beyond a missing guidance line.
type Explainer interface {
	Explain(ctx context.Context, req ExplainRequest) (string, error)
}

// Engine hosts one Simulation on a single goroutine. The master 1 Hz tick
// and every user command arrive on the same event loop, so all Session
// mutation is serialised without locks even under a multi-threaded host.
type Engine struct {
	logger *zap.Logger
	sim    *Simulation

	cmds   chan func()
	quit   chan struct{}
	closed chan struct{}

	ticks  <-chan time.Time
	ticker *time.Ticker

	running    bool
	explainer  Explainer
	onComplete func(Session, Result)

	closeOnce sync.Once
}

type Option func(*Engine)

// WithTicks replaces the wall-clock ticker with an external tick source,
// used by tests to drive the loop deterministically.
func WithTicks(ticks <-chan time.Time) Option {
	return func(e *Engine) { e.ticks = ticks }
}

func WithExplainer(ex Explainer) Option {
	return func(e *Engine) { e.explainer = ex }
}

// WithOnComplete registers a hook invoked once when the session reaches the
// terminal state, with the frozen session and its result.
func WithOnComplete(fn func(Session, Result)) Option {
	return func(e *Engine) { e.onComplete = fn }
}

// StartSession builds the simulation for caseID and starts its event loop
// running. The returned engine must be closed when the host is done with
// it; a discarded engine with live timers mutating a stale session is the
// defect class Close exists to prevent.
func StartSession(cat *catalog.Catalog, caseID string, seed int64, logger *zap.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := NewSimulation(cat, caseID, seed, logger)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		logger:  logger,
		sim:     s,
		cmds:    make(chan func()),
		quit:    make(chan struct{}),
		closed:  make(chan struct{}),
		running: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ticks == nil {
		e.ticker = time.NewTicker(time.Second)
		e.ticks = e.ticker.C
	}

	s.explainFn = e.requestExplanation

	go e.loop()
	return e, nil
}

func (e *Engine) loop() {
	defer close(e.closed)
	if e.ticker != nil {
		defer e.ticker.Stop()
	}
	for {
		select {
		case <-e.quit:
			return
		case <-e.ticks:
			if !e.running || e.sim.Completed() {
				continue
			}
			e.sim.Tick()
			if e.sim.Completed() {
				e.finish()
			}
		case f := <-e.cmds:
			f()
		}
	}
}

// do runs f on the event loop and waits for it. It reports false once the
// engine has been closed, at which point the loop goroutine is gone and the
// caller holds exclusive access anyway.
func (e *Engine) do(f func()) bool {
	done := make(chan struct{})
	select {
	case e.cmds <- func() { f(); close(done) }:
		<-done
		return true
	case <-e.closed:
		return false
	}
}

// Pause suspends ticking while preserving session state exactly; Resume
// continues from the preserved timers.
func (e *Engine) Pause() {
	e.do(func() { e.running = false })
}

func (e *Engine) Resume() {
	e.do(func() { e.running = true })
}

// ApplyIntervention resolves one intervention request. While paused the
// request is ignored, matching the gating a host UI applies.
func (e *Engine) ApplyIntervention(id string) ApplyResult {
	result := ApplyResult{InterventionID: id, Ignored: true}
	e.do(func() {
		if !e.running {
			return
		}
		result = e.sim.Apply(id)
	})
	return result
}

func (e *Engine) Snapshot() Snapshot {
	var snap Snapshot
	if !e.do(func() { snap = e.sim.Snapshot() }) {
		snap = e.sim.Snapshot()
	}
	return snap
}

// Close tears down the event loop and its timers. Idempotent; returns once
// no goroutine can mutate the session any more.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.quit) })
	<-e.closed
}

func (e *Engine) finish() {
	if e.onComplete == nil {
		return
	}
	sess := e.sim.Session()
	result := *sess.Score
	// Persistence runs off-loop so a slow sink cannot stall ticking for any
	// other engine sharing the host.
	go e.onComplete(sess, result)
}

// requestExplanation fans an explanation request out to the collaborator
// and folds the answer back onto the event loop when it arrives. Responses
// landing after completion are dropped.
func (e *Engine) requestExplanation(req ExplainRequest) {
	if e.explainer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		text, err := e.explainer.Explain(ctx, req)
		if err != nil || text == "" {
			e.logger.Debug("explanation unavailable", zap.Error(err))
			return
		}
		e.do(func() {
			if !e.sim.Completed() {
				e.sim.session.guidance = append(e.sim.session.guidance, text)
			}
		})
	}()
}
