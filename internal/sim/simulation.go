// Package sim implements the pediatric emergency simulation engine: a
// tick-driven patient physiology model, stochastic intervention resolution,
// stage state machine, and the scheduled deterioration subsystems, all
// multiplexed onto a single event loop by Engine.
package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/vitals"
)

const (
	timePressureCadence  = 5  // ticks between time-pressure checks
	rapidResponseCadence = 10 // ticks between rapid-response sweeps
	stalenessWindow      = 30 // seconds an intervention suppresses emergencies
	emergencyIntervalMin = 15
	emergencyIntervalMax = 45
)

// ExplainRequest asks the explanation collaborator for prose guidance on an
// intervention just applied, keyed on the stage context it happened in.
type ExplainRequest struct {
	InterventionID   string
	InterventionName string
	CaseID           string
	CaseCategory     string
	Stage            int
	StageDescription string
	Success          bool
}

// Simulation is the synchronous core: it owns one Session and advances it
// one second per Tick. It is not safe for concurrent use; Engine serialises
// access through its event loop.
type Simulation struct {
	cat     *catalog.Catalog
	kase    catalog.Case
	effects map[string]effectSpec
	rng     *rand.Rand
	logger  *zap.Logger

	session Session

	emergencyNextTick int
	stageExpired      bool
	warned            map[string]bool

	// successDraw decides intervention outcomes; replaced in tests to force
	// deterministic results.
	successDraw func(rate float64) bool
	// explainFn, when set, receives a request after every resolved
	// application. Must not block.
	explainFn func(ExplainRequest)
}

// NewSimulation constructs a session for caseID against an already-loaded
// catalog. The catalog is complete before this returns; there is no window
// where a session can start against a half-populated library.
func NewSimulation(cat *catalog.Catalog, caseID string, seed int64, logger *zap.Logger) (*Simulation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	kase, err := cat.Case(caseID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if len(kase.Stages) == 0 {
		return nil, fmt.Errorf("start session: case %s has no stages", caseID)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cat:     cat,
		kase:    kase,
		effects: defaultEffects(),
		rng:     seededRNG(seed),
		logger:  logger,
		warned:  map[string]bool{},
		session: Session{
			ID:                   uuid.New(),
			CaseID:               kase.ID,
			CurrentStage:         1,
			Vitals:               kase.InitialVitals,
			Available:            append([]string(nil), kase.Stages[0].AvailableIDs...),
			lastInterventionTick: neverApplied,
		},
	}
	s.session.Vitals.Clamp(false)
	s.successDraw = func(rate float64) bool { return s.rng.Float64() < rate }
	s.armEmergency()

	logger.Info("session started",
		zap.String("session_id", s.session.ID.String()),
		zap.String("case_id", kase.ID),
		zap.Int64("seed", seed))
	return s, nil
}

// Session returns a copy of the current session state.
func (s *Simulation) Session() Session {
	return s.session
}

// Completed reports whether the session has reached the terminal state.
func (s *Simulation) Completed() bool {
	return s.session.Completed
}

// Tick advances the simulation by one second: natural drift, the scheduled
// subsystems that are due, then the stage state machine. Nothing on this
// path can fail; all vitals math is clamped and every optional field is
// defaulted, so a tick can never kill the loop that drives it.
func (s *Simulation) Tick() {
	if s.session.Completed {
		return
	}

	s.session.TimeElapsed++
	s.session.StageTime++
	s.session.pruneExpired()

	s.applyNaturalDrift()

	if s.session.TimeElapsed%timePressureCadence == 0 {
		s.checkTimePressure()
	}
	if s.session.TimeElapsed%rapidResponseCadence == 0 {
		s.checkRapidResponse()
	}
	if s.session.TimeElapsed >= s.emergencyNextTick {
		s.checkEmergency()
	}

	s.checkStage()
}

// applyNaturalDrift models untreated deterioration each tick. Each process
// is suppressed while a counter-intervention of the right class succeeded
// recently enough to still be effective.
func (s *Simulation) applyNaturalDrift() {
	v := &s.session.Vitals
	var d vitals.Delta

	if v.OxygenSat < 90 && !s.counterActive(driftHypoxia) {
		d.OxygenSat -= 1
	}
	if v.Temperature > 100.4 && !s.counterActive(driftFever) {
		d.Temperature += 0.1
	}
	if v.RespRate > 30 && !s.counterActive(driftTachypnea) {
		d.RespRate += 1
	}
	if v.HeartRate > 140 && !s.counterActive(driftTachycardia) {
		d.HeartRate += 2
	}
	v.Apply(d, s.session.Terminal)

	if v.Consciousness == vitals.PostIctal && !s.counterActive(driftSeizureRelapse) {
		if s.rng.Float64() < 0.30 {
			v.Consciousness = vitals.Seizing
			s.session.addEvent("Seizure activity has restarted")
		}
	}
}

// counterActive reports whether any successful applied intervention that
// counters kind is still inside its effect window.
func (s *Simulation) counterActive(kind driftKind) bool {
	for i := len(s.session.Applied) - 1; i >= 0; i-- {
		a := s.session.Applied[i]
		if !a.Success {
			continue
		}
		spec, ok := s.effects[a.InterventionID]
		if !ok {
			continue
		}
		if s.session.TimeElapsed >= a.TimeApplied+spec.window() {
			continue
		}
		for _, k := range spec.Counters {
			if k == kind {
				return true
			}
		}
	}
	return false
}
