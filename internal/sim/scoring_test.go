package sim

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/brightward-health/pedsim/internal/catalog"
)

func TestWorstCaseScoresZero(t *testing.T) {
	s, err := NewSimulation(catalog.Load(), "febrile_seizure", 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	// No critical actions, double the estimated time, nothing applied.
	s.session.TimeElapsed = int(s.kase.EstimatedTime.Seconds()) * 2

	result := s.scoreResult()
	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}

	tier := ""
	for _, line := range result.Feedback {
		if strings.Contains(line, "/100") {
			tier = line
		}
	}
	if !strings.Contains(tier, "Needs improvement") {
		t.Errorf("tier = %q, want the needs-improvement band", tier)
	}
	if result.CriticalCompleted != 0 || result.CriticalRequired == 0 {
		t.Errorf("criticals = %d/%d, want 0 of a non-empty set", result.CriticalCompleted, result.CriticalRequired)
	}
}

func TestPerfectRunScoresFull(t *testing.T) {
	s, err := NewSimulation(catalog.Load(), "febrile_seizure", 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	// Every critical action succeeded, on time, all high-yield.
	for _, stage := range s.kase.Stages {
		for _, id := range stage.CriticalActions {
			s.session.Applied = append(s.session.Applied, AppliedIntervention{
				InterventionID: id, Applied: true, Success: true,
			})
		}
	}
	s.session.TimeElapsed = int(s.kase.EstimatedTime.Seconds())

	result := s.scoreResult()
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100", result.Score)
	}
	for _, line := range result.Feedback {
		if strings.Contains(line, "Missed critical actions") {
			t.Errorf("unexpected missed-actions feedback: %q", line)
		}
	}
}

func TestTimeEfficiencyBands(t *testing.T) {
	tests := []struct {
		name      string
		ratio     float64
		wantScore int // with full criticals and no applied interventions
	}{
		{"inside window", 1.0, 90},
		{"slightly over", 1.4, 85},
		{"well over", 1.9, 80},
		{"double time", 2.0, 70},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSimulation(catalog.Load(), "febrile_seizure", 1, zap.NewNop())
			if err != nil {
				t.Fatal(err)
			}
			for _, stage := range s.kase.Stages {
				for _, id := range stage.CriticalActions {
					s.session.Applied = append(s.session.Applied, AppliedIntervention{
						InterventionID: id, Applied: true, Success: true,
					})
				}
			}
			s.session.TimeElapsed = int(s.kase.EstimatedTime.Seconds() * tc.ratio)

			// Criticals count as applied interventions; they are all
			// high-yield here, so quality contributes its full 10.
			result := s.scoreResult()
			want := tc.wantScore + 10
			if result.Score != want {
				t.Errorf("Score = %d, want %d (ratio %.1f)", result.Score, want, tc.ratio)
			}
		})
	}
}

func TestMissedCriticalsListedByName(t *testing.T) {
	s, err := NewSimulation(catalog.Load(), "febrile_seizure", 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s.session.TimeElapsed = 60

	result := s.scoreResult()
	if len(result.Feedback) == 0 || !strings.Contains(result.Feedback[0], "Missed critical actions") {
		t.Fatalf("feedback = %v, want missed actions first", result.Feedback)
	}
	if !strings.Contains(result.Feedback[0], "High-Flow Oxygen") {
		t.Errorf("missed actions should use display names: %q", result.Feedback[0])
	}
}

func TestCategoryPointersIncluded(t *testing.T) {
	s, err := NewSimulation(catalog.Load(), "status_asthmaticus", 1, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	s.session.TimeElapsed = 60

	result := s.scoreResult()
	found := false
	for _, line := range result.Feedback {
		if strings.Contains(line, "bronchodilator") || strings.Contains(line, "asthma") {
			found = true
		}
	}
	if !found {
		t.Errorf("feedback = %v, want respiratory learning pointers", result.Feedback)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	build := func() Result {
		s, err := NewSimulation(catalog.Load(), "anaphylaxis", 1, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		s.session.TimeElapsed = 200
		s.session.Applied = []AppliedIntervention{
			{InterventionID: "epinephrine_im", Applied: true, Success: true},
			{InterventionID: "fluid_bolus", Applied: true, Success: false},
		}
		return s.scoreResult()
	}

	a, b := build(), build()
	if a.Score != b.Score || len(a.Feedback) != len(b.Feedback) {
		t.Errorf("scoring not deterministic: %+v vs %+v", a, b)
	}
}
