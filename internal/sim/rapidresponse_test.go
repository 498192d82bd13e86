package sim

import (
	"testing"

	"github.com/brightward-health/pedsim/internal/vitals"
)

func TestRapidResponseSurfacesEscalations(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.InitialVitals = vitals.VitalSigns{
		HeartRate: 185, RespRate: 55, OxygenSat: 80,
		Temperature: 105, BPSystolic: 65, BPDiastolic: 40,
		Consciousness: vitals.Unresponsive,
	}
	s := newTestSim(kase, 1)

	s.checkRapidResponse()

	want := []string{
		"emergency_airway_rescue", "rapid_cardiac_assessment",
		"activate_response_team", "rapid_fluid_push",
		"active_cooling", "respiratory_escalation",
	}
	for _, id := range want {
		if !s.session.hasAvailable(id) {
			t.Errorf("escalation %s not offered", id)
		}
	}
}

func TestRapidResponseNeverDuplicates(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.InitialVitals.OxygenSat = 80
	s := newTestSim(kase, 1)

	s.checkRapidResponse()
	before := len(s.session.Available)
	s.checkRapidResponse()
	if len(s.session.Available) != before {
		t.Errorf("Available grew from %d to %d on a repeat sweep", before, len(s.session.Available))
	}
}

func TestRapidResponseNeverRemoves(t *testing.T) {
	kase := quietCase(quietStage(1, 0))
	kase.InitialVitals.OxygenSat = 80
	s := newTestSim(kase, 1)

	s.checkRapidResponse()
	if !s.session.hasAvailable("emergency_airway_rescue") {
		t.Fatal("setup: escalation not offered")
	}

	// Vitals recover; the offer stays.
	s.session.Vitals.OxygenSat = 98
	s.checkRapidResponse()
	if !s.session.hasAvailable("emergency_airway_rescue") {
		t.Error("escalation removed after vitals recovered")
	}
}

func TestQuietVitalsOfferNothing(t *testing.T) {
	s := newTestSim(quietCase(quietStage(1, 0)), 1)
	before := len(s.session.Available)
	s.checkRapidResponse()
	if len(s.session.Available) != before {
		t.Errorf("escalations offered for stable vitals: %v", s.session.Available)
	}
}
