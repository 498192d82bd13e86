package sim

import (
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
	"github.com/brightward-health/pedsim/internal/vitals"
)

func (s *Simulation) currentStageDef() catalog.Stage {
	idx := s.session.CurrentStage - 1
	if idx < 0 || idx >= len(s.kase.Stages) {
		return catalog.Stage{}
	}
	return s.kase.Stages[idx]
}

// checkStage runs the stage state machine once per tick. Branching
// conditions are evaluated first so a crashing patient moves on before the
// clock does; at most one transition happens per tick. Stage numbers only
// ever increase; reaching the end freezes the session and computes the
// score.
func (s *Simulation) checkStage() {
	if s.session.Completed {
		return
	}
	stage := s.currentStageDef()

	for _, cond := range stage.BranchingConditions {
		if cond.Holds(s.session.Vitals) {
			s.logger.Info("branching condition met",
				zap.String("condition", cond.Name),
				zap.Int("stage", s.session.CurrentStage))
			patch := cond.Patch
			s.advanceStage(&patch)
			return
		}
	}

	if stage.TimeLimit > 0 && s.session.StageTime >= int(stage.TimeLimit.Seconds()) {
		s.advanceStage(nil)
	}
}

// advanceStage moves to the next stage, or to the terminal state when the
// last stage ends. On entry the new stage's vitals snapshot is overlaid on
// the patient, then the branch patch (if any) on top of that, and the
// actionable intervention list is replaced with the new stage's set.
// Earlier applications stay in the session history for scoring but are no
// longer actionable unless the new stage re-lists them.
func (s *Simulation) advanceStage(patch *vitals.VitalSigns) {
	if s.session.CurrentStage >= len(s.kase.Stages) {
		s.complete()
		return
	}

	s.session.CurrentStage++
	s.session.StageTime = 0
	s.stageExpired = false
	s.warned = map[string]bool{}

	stage := s.currentStageDef()
	s.session.Vitals.Merge(stage.Vitals, s.session.Terminal)
	if patch != nil {
		s.session.Vitals.Merge(*patch, s.session.Terminal)
	}
	s.session.Available = append([]string(nil), stage.AvailableIDs...)

	s.logger.Info("stage entered",
		zap.Int("stage", s.session.CurrentStage),
		zap.String("description", stage.Description))
}

func (s *Simulation) complete() {
	s.session.Completed = true
	result := s.scoreResult()
	s.session.Score = &result
	s.session.guidance = nil

	s.logger.Info("session complete",
		zap.String("session_id", s.session.ID.String()),
		zap.Int("score", result.Score))
}
