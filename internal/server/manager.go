// Package server exposes the engine to a host UI over HTTP. It is a thin
// adapter: every route maps onto one of the engine's calls.
package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/results"
	"github.com/brightward-health/pedsim/internal/sim"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionManager owns the running engines. Each session id maps to exactly
// one engine; closing the manager tears every engine down so no timer
// outlives the host.
type SessionManager struct {
	cat       *catalog.Catalog
	logger    *zap.Logger
	explainer sim.Explainer
	store     *results.Repository // nil disables persistence
	seed      int64

	mu      sync.Mutex
	engines map[string]*sim.Engine
}

func NewSessionManager(cat *catalog.Catalog, logger *zap.Logger, explainer sim.Explainer, store *results.Repository, seed int64) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		cat:       cat,
		logger:    logger,
		explainer: explainer,
		store:     store,
		seed:      seed,
		engines:   make(map[string]*sim.Engine),
	}
}

// Start launches a new session for caseID and returns its first snapshot.
func (m *SessionManager) Start(caseID string) (sim.Snapshot, error) {
	opts := []sim.Option{sim.WithExplainer(m.explainer)}
	if m.store != nil {
		opts = append(opts, sim.WithOnComplete(m.persist))
	}

	engine, err := sim.StartSession(m.cat, caseID, m.seed, m.logger, opts...)
	if err != nil {
		return sim.Snapshot{}, err
	}

	snap := engine.Snapshot()
	m.mu.Lock()
	m.engines[snap.SessionID] = engine
	m.mu.Unlock()
	return snap, nil
}

func (m *SessionManager) engine(sessionID string) (*sim.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	engine, ok := m.engines[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return engine, nil
}

func (m *SessionManager) Snapshot(sessionID string) (sim.Snapshot, error) {
	engine, err := m.engine(sessionID)
	if err != nil {
		return sim.Snapshot{}, err
	}
	return engine.Snapshot(), nil
}

func (m *SessionManager) Pause(sessionID string) error {
	engine, err := m.engine(sessionID)
	if err != nil {
		return err
	}
	engine.Pause()
	return nil
}

func (m *SessionManager) Resume(sessionID string) error {
	engine, err := m.engine(sessionID)
	if err != nil {
		return err
	}
	engine.Resume()
	return nil
}

func (m *SessionManager) Apply(sessionID, interventionID string) (sim.ApplyResult, error) {
	engine, err := m.engine(sessionID)
	if err != nil {
		return sim.ApplyResult{}, err
	}
	return engine.ApplyIntervention(interventionID), nil
}

// End tears down one session's engine and forgets it.
func (m *SessionManager) End(sessionID string) error {
	m.mu.Lock()
	engine, ok := m.engines[sessionID]
	delete(m.engines, sessionID)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	engine.Close()
	return nil
}

// Close tears down every engine. Must run on host shutdown.
func (m *SessionManager) Close() {
	m.mu.Lock()
	engines := make([]*sim.Engine, 0, len(m.engines))
	for id, e := range m.engines {
		engines = append(engines, e)
		delete(m.engines, id)
	}
	m.mu.Unlock()
	for _, e := range engines {
		e.Close()
	}
}

func (m *SessionManager) persist(sess sim.Session, result sim.Result) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rec := results.Record{
		SessionID:         sess.ID.String(),
		CaseID:            sess.CaseID,
		Score:             result.Score,
		CriticalRequired:  result.CriticalRequired,
		CriticalCompleted: result.CriticalCompleted,
		DurationSeconds:   sess.TimeElapsed,
		Feedback:          result.Feedback,
		CompletedAt:       time.Now().UTC(),
	}
	if err := m.store.Save(ctx, rec); err != nil {
		m.logger.Error("failed to persist session result",
			zap.String("session_id", rec.SessionID),
			zap.Error(err))
	}
}
