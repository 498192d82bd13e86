package sim

import (
	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/vitals"
)

// emergencyRule pairs a vitals predicate with a probability roll and the
// deterioration it narrates.
type emergencyRule struct {
	When   func(v vitals.VitalSigns) bool
	Chance float64
	Text   string
	Delta  vitals.Delta
}

// armEmergency re-draws the next firing tick uniformly in [15s, 45s] from
// the session PRNG, keeping random-interval behavior reproducible under a
// fixed seed.
func (s *Simulation) armEmergency() {
	interval := emergencyIntervalMin + s.rng.IntN(emergencyIntervalMax-emergencyIntervalMin+1)
	s.emergencyNextTick = s.session.TimeElapsed + interval
}

// checkEmergency fires at most one deterioration event per interval, and
// only when the patient has been neglected: any intervention inside the
// staleness window suppresses the generator entirely.
func (s *Simulation) checkEmergency() {
	defer s.armEmergency()

	if s.session.TimeElapsed-s.session.lastInterventionTick < stalenessWindow {
		return
	}

	rules := append(s.categoryRules(), universalEmergencyRules()...)
	for _, r := range rules {
		if !r.When(s.session.Vitals) {
			continue
		}
		if s.rng.Float64() >= r.Chance {
			continue
		}
		s.session.addEvent(r.Text)
		s.session.Vitals.Apply(r.Delta, s.session.Terminal)
		s.logger.Info("emergency event fired",
			zap.String("event", r.Text),
			zap.Int("tick", s.session.TimeElapsed))
		return
	}
}

// categoryRules conditions event selection on the case's clinical category.
func (s *Simulation) categoryRules() []emergencyRule {
	switch s.kase.Category {
	case "neurological":
		return []emergencyRule{{
			When:   func(v vitals.VitalSigns) bool { return v.Temperature > 102 },
			Chance: 0.30,
			Text:   "Recurrent seizure triggered by the climbing fever",
			Delta:  vitals.Delta{OxygenSat: -5, HeartRate: 20, SetConsciousness: vitals.Seizing},
		}}
	case "respiratory":
		return []emergencyRule{{
			When:   func(v vitals.VitalSigns) bool { return v.OxygenSat < 90 },
			Chance: 0.35,
			Text:   "Bronchospasm intensifying; air entry falling off",
			Delta:  vitals.Delta{OxygenSat: -8, RespRate: 10},
		}}
	case "allergic":
		return []emergencyRule{{
			When:   func(v vitals.VitalSigns) bool { return v.BPSystolic < 85 },
			Chance: 0.35,
			Text:   "Biphasic reaction flaring with new airway swelling",
			Delta:  vitals.Delta{BPSystolic: -10, OxygenSat: -5, HeartRate: 15},
		}}
	case "infectious":
		return []emergencyRule{{
			When:   func(v vitals.VitalSigns) bool { return v.BPSystolic < 80 },
			Chance: 0.30,
			Text:   "Perfusion collapsing as septic vasodilation deepens",
			Delta:  vitals.Delta{BPSystolic: -12, HeartRate: 15},
		}}
	default:
		return nil
	}
}

// universalEmergencyRules apply to every case regardless of category.
func universalEmergencyRules() []emergencyRule {
	return []emergencyRule{
		{
			When:   func(v vitals.VitalSigns) bool { return v.OxygenSat < 80 },
			Chance: 0.60,
			Text:   "Profound desaturation; cyanosis spreading",
			Delta:  vitals.Delta{OxygenSat: -5, HeartRate: 10},
		},
		{
			When:   func(v vitals.VitalSigns) bool { return v.HeartRate > 190 },
			Chance: 0.40,
			Text:   "Extreme tachycardia compromising cardiac filling",
			Delta:  vitals.Delta{BPSystolic: -10},
		},
		{
			When:   func(v vitals.VitalSigns) bool { return v.Consciousness == vitals.Unresponsive },
			Chance: 0.70,
			Text:   "Respiratory effort failing in the unresponsive patient",
			Delta:  vitals.Delta{OxygenSat: -6, RespRate: -4},
		},
	}
}
