package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
)

// ApplyResult reports the outcome of one intervention request. Ignored is
// true when the request failed admission (not offered in this stage, or
// still cooling down); mirroring permissive UI gating, that is a quiet
// no-op, not an error.
type ApplyResult struct {
	InterventionID string `json:"intervention_id"`
	Ignored        bool   `json:"ignored"`
	Success        bool   `json:"success"`
	Message        string `json:"message"`
}

// Apply resolves one intervention request against the current session:
// admission check, Bernoulli success draw, then the intervention-specific
// multi-vital effect and its complications.
func (s *Simulation) Apply(interventionID string) ApplyResult {
	if s.session.Completed {
		return ApplyResult{InterventionID: interventionID, Ignored: true}
	}
	if !s.session.hasAvailable(interventionID) {
		return ApplyResult{InterventionID: interventionID, Ignored: true}
	}
	if last, ok := s.session.latestApplication(interventionID); ok && s.session.TimeElapsed < last.CooldownEnd {
		return ApplyResult{InterventionID: interventionID, Ignored: true}
	}

	iv, err := s.cat.Intervention(interventionID)
	if err != nil {
		// A stage listing an unknown id is a content defect; the action is
		// swallowed rather than crashing the tick loop.
		s.logger.Warn("unknown intervention requested", zap.String("intervention_id", interventionID))
		return ApplyResult{InterventionID: interventionID, Ignored: true}
	}

	success := s.successDraw(iv.SuccessRate)
	spec := s.effects[interventionID]

	if success {
		s.session.Vitals.Apply(spec.Success, s.session.Terminal)
		s.rollSideEffect(iv)
	} else {
		s.session.Vitals.Apply(spec.Failure, s.session.Terminal)
		text := spec.FailureText
		if text == "" {
			text = fmt.Sprintf("%s was unsuccessful", iv.Name)
		}
		s.session.addComplication(text)
	}

	cooldown := int(iv.Cooldown().Seconds())
	s.session.Applied = append(s.session.Applied, AppliedIntervention{
		InterventionID: interventionID,
		Applied:        true,
		TimeApplied:    s.session.TimeElapsed,
		CooldownEnd:    s.session.TimeElapsed + cooldown,
		Success:        success,
	})
	s.session.lastInterventionTick = s.session.TimeElapsed

	stage := s.currentStageDef()
	if s.explainFn != nil {
		s.explainFn(ExplainRequest{
			InterventionID:   interventionID,
			InterventionName: iv.Name,
			CaseID:           s.kase.ID,
			CaseCategory:     s.kase.Category,
			Stage:            s.session.CurrentStage,
			StageDescription: stage.Description,
			Success:          success,
		})
	}

	msg := fmt.Sprintf("%s succeeded", iv.Name)
	if !success {
		msg = fmt.Sprintf("%s failed", iv.Name)
	}
	s.logger.Debug("intervention resolved",
		zap.String("intervention_id", interventionID),
		zap.Bool("success", success),
		zap.Int("tick", s.session.TimeElapsed))
	return ApplyResult{InterventionID: interventionID, Success: success, Message: msg}
}

// rollSideEffect gives drug and procedure successes a small chance of a
// minor complication: medication 10%, procedure 8%.
func (s *Simulation) rollSideEffect(iv catalog.Intervention) {
	switch iv.Category {
	case catalog.CategoryMedication:
		if s.rng.Float64() < 0.10 {
			s.session.addComplication(fmt.Sprintf("Minor side effect after %s", iv.Name))
		}
	case catalog.CategoryProcedure:
		if s.rng.Float64() < 0.08 {
			s.session.addComplication(fmt.Sprintf("Minor complication during %s", iv.Name))
		}
	}
}
