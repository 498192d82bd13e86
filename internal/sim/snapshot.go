package sim

import (
	"github.com/brightward-health/pedsim/internal/vitals"
)

// InterventionView is one actionable entry in a snapshot's intervention
// list, with cooldown state resolved for display.
type InterventionView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	OnCooldown   bool   `json:"on_cooldown"`
	CooldownLeft int    `json:"cooldown_left"`
}

// Snapshot is the read-only view a host UI or test harness polls: vitals,
// stage, timers, transient feeds, and the score once the session completes.
type Snapshot struct {
	SessionID        string             `json:"session_id"`
	CaseID           string             `json:"case_id"`
	CaseName         string             `json:"case_name"`
	Stage            int                `json:"stage"`
	TotalStages      int                `json:"total_stages"`
	StageDescription string             `json:"stage_description"`
	TimeElapsed      int                `json:"time_elapsed"`
	StageTime        int                `json:"stage_time"`
	TimeRemaining    int                `json:"time_remaining"` // -1 when the stage is untimed
	Vitals           vitals.VitalSigns  `json:"vitals"`
	BloodPressure    string             `json:"blood_pressure"`
	Interventions    []InterventionView `json:"interventions"`
	Events           []string           `json:"events,omitempty"`
	Complications    []string           `json:"complications,omitempty"`
	Guidance         []string           `json:"guidance,omitempty"`
	Completed        bool               `json:"completed"`
	Score            *Result            `json:"score,omitempty"`
}

func (s *Simulation) Snapshot() Snapshot {
	sess := s.session
	stage := s.currentStageDef()

	remaining := -1
	if stage.TimeLimit > 0 {
		remaining = int(stage.TimeLimit.Seconds()) - sess.StageTime
		if remaining < 0 {
			remaining = 0
		}
	}

	views := make([]InterventionView, 0, len(sess.Available))
	for _, id := range sess.Available {
		iv, err := s.cat.Intervention(id)
		if err != nil {
			continue
		}
		view := InterventionView{ID: id, Name: iv.Name, Category: string(iv.Category)}
		if last, ok := sess.latestApplication(id); ok && sess.TimeElapsed < last.CooldownEnd {
			view.OnCooldown = true
			view.CooldownLeft = last.CooldownEnd - sess.TimeElapsed
		}
		views = append(views, view)
	}

	var score *Result
	if sess.Score != nil {
		copied := *sess.Score
		score = &copied
	}

	return Snapshot{
		SessionID:        sess.ID.String(),
		CaseID:           sess.CaseID,
		CaseName:         s.kase.Name,
		Stage:            sess.CurrentStage,
		TotalStages:      len(s.kase.Stages),
		StageDescription: stage.Description,
		TimeElapsed:      sess.TimeElapsed,
		StageTime:        sess.StageTime,
		TimeRemaining:    remaining,
		Vitals:           sess.Vitals,
		BloodPressure:    sess.Vitals.BloodPressure(),
		Interventions:    views,
		Events:           messageTexts(sess.events),
		Complications:    messageTexts(sess.complications),
		Guidance:         append([]string(nil), sess.guidance...),
		Completed:        sess.Completed,
		Score:            score,
	}
}
