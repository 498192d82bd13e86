package sim

import (
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/vitals"
)

// responseRule maps a breached vitals threshold to the emergency-only
// intervention that should be on offer while it holds.
type responseRule struct {
	When           func(v vitals.VitalSigns) bool
	InterventionID string
}

func rapidResponseRules() []responseRule {
	return []responseRule{
		{func(v vitals.VitalSigns) bool { return v.OxygenSat < 85 }, "emergency_airway_rescue"},
		{func(v vitals.VitalSigns) bool { return v.HeartRate > 180 }, "rapid_cardiac_assessment"},
		{func(v vitals.VitalSigns) bool { return v.Consciousness == vitals.Unresponsive }, "activate_response_team"},
		{func(v vitals.VitalSigns) bool { return v.BPSystolic < 70 }, "rapid_fluid_push"},
		{func(v vitals.VitalSigns) bool { return v.Temperature > 104 }, "active_cooling"},
		{func(v vitals.VitalSigns) bool { return v.RespRate > 50 }, "respiratory_escalation"},
	}
}

// checkRapidResponse sweeps the threshold rules every ten ticks and surfaces
// the matching escalations in the available list. Interventions are added,
// never removed, and never duplicated by id.
func (s *Simulation) checkRapidResponse() {
	for _, r := range rapidResponseRules() {
		if !r.When(s.session.Vitals) {
			continue
		}
		if s.session.hasAvailable(r.InterventionID) {
			continue
		}
		s.session.Available = append(s.session.Available, r.InterventionID)
		s.session.addEvent("Escalation now available: " + r.InterventionID)
		s.logger.Info("rapid response escalation offered",
			zap.String("intervention_id", r.InterventionID),
			zap.Int("tick", s.session.TimeElapsed))
	}
}
