package sim

import (
	"testing"

	"github.com/brightward-health/pedsim/internal/vitals"
)

func TestEmergencyIntervalBounds(t *testing.T) {
	s := newTestSim(quietCase(quietStage(1, 0)), 3)
	for i := 0; i < 200; i++ {
		s.armEmergency()
		interval := s.emergencyNextTick - s.session.TimeElapsed
		if interval < emergencyIntervalMin || interval > emergencyIntervalMax {
			t.Fatalf("interval = %ds, want within [%d,%d]", interval, emergencyIntervalMin, emergencyIntervalMax)
		}
	}
}

// The staleness gate must hold for every random draw: a recent intervention
// suppresses the generator no matter what the dice say.
func TestStalenessGateSuppressesAllFirings(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.InitialVitals.OxygenSat = 75 // would otherwise roll at 60%
	s := newTestSim(kase, 5)

	for i := 0; i < 100; i++ {
		s.session.TimeElapsed++
		s.session.lastInterventionTick = s.session.TimeElapsed - (stalenessWindow - 1)
		s.checkEmergency()
		if len(s.session.events) != 0 {
			t.Fatalf("event fired %v with an intervention %ds ago", s.session.events, stalenessWindow-1)
		}
	}
}

func TestNeglectedHypoxicPatientEventuallyDeteriorates(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.InitialVitals.OxygenSat = 75
	s := newTestSim(kase, 5)

	fired := false
	for i := 0; i < 100 && !fired; i++ {
		s.session.TimeElapsed += stalenessWindow
		before := s.session.Vitals.OxygenSat
		s.checkEmergency()
		if len(s.session.events) > 0 {
			fired = true
			if s.session.Vitals.OxygenSat >= before {
				t.Error("event fired without its vitals penalty")
			}
		}
	}
	if !fired {
		t.Error("no emergency fired for a neglected hypoxic patient over 100 intervals")
	}
}

func TestCategoryConditionedSeizureEvent(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.Category = "neurological"
	kase.InitialVitals.Temperature = 103
	kase.InitialVitals.Consciousness = vitals.Drowsy
	s := newTestSim(kase, 11)

	fired := false
	for i := 0; i < 200 && !fired; i++ {
		s.session.TimeElapsed += stalenessWindow
		s.checkEmergency()
		fired = s.session.Vitals.Consciousness == vitals.Seizing
		s.session.events = nil
	}
	if !fired {
		t.Error("febrile neurological case never rolled a recurrent seizure over 200 intervals")
	}
}

func TestEmergencyEventExpires(t *testing.T) {
	s := newTestSim(quietCase(quietStage(1, 0)), 1)
	s.emergencyNextTick = 1 << 30
	s.session.addEvent("transient deterioration")

	for i := 0; i < eventTTL+1; i++ {
		s.Tick()
	}
	if len(s.session.events) != 0 {
		t.Errorf("events = %v, want expiry after %ds", s.session.events, eventTTL)
	}
}
