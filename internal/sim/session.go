package sim

import (
	"github.com/google/uuid"

	"github.com/brightward-health/pedsim/internal/vitals"
)

// AppliedIntervention is the session record of one intervention attempt.
// Records are append-only; they drive delayed vital effects, cooldown gating,
// the emergency staleness gate, and scoring.
type AppliedIntervention struct {
	InterventionID string `json:"intervention_id"`
	Applied        bool   `json:"applied"`
	TimeApplied    int    `json:"time_applied"` // tick offset into the session
	CooldownEnd    int    `json:"cooldown_end"` // tick after which it can be reapplied
	Success        bool   `json:"success"`
}

// timedMessage is a transient display string that drops off the feed once
// its expiry tick passes.
type timedMessage struct {
	Text      string
	ExpiresAt int
}

const (
	eventTTL        = 10 // seconds an emergency event stays visible
	complicationTTL = 8  // seconds a complication stays visible
)

// neverApplied keeps the staleness gate open before the first intervention.
const neverApplied = -1 << 20

// Session is the complete mutable state of one running simulation. It is
// owned by a single Simulation; all mutation happens on the engine's event
// loop.
type Session struct {
	ID     uuid.UUID
	CaseID string

	TimeElapsed  int // ticks since start, 1 tick = 1 second
	StageTime    int // ticks since current stage entry
	CurrentStage int // 1-based, only ever increases

	Vitals    vitals.VitalSigns
	Available []string
	Applied   []AppliedIntervention

	events        []timedMessage
	complications []timedMessage
	guidance      []string

	// Terminal marks that a time-expiry deterioration has fired, which
	// widens the oxygen saturation floor for the rest of the session.
	Terminal  bool
	Completed bool
	Score     *Result

	lastInterventionTick int
}

func (s *Session) pruneExpired() {
	s.events = pruneMessages(s.events, s.TimeElapsed)
	s.complications = pruneMessages(s.complications, s.TimeElapsed)
}

func pruneMessages(in []timedMessage, now int) []timedMessage {
	active := in[:0]
	for _, m := range in {
		if m.ExpiresAt > now {
			active = append(active, m)
		}
	}
	return active
}

func (s *Session) addEvent(text string) {
	s.events = append(s.events, timedMessage{Text: text, ExpiresAt: s.TimeElapsed + eventTTL})
}

func (s *Session) addComplication(text string) {
	s.complications = append(s.complications, timedMessage{Text: text, ExpiresAt: s.TimeElapsed + complicationTTL})
}

func (s *Session) hasAvailable(id string) bool {
	for _, a := range s.Available {
		if a == id {
			return true
		}
	}
	return false
}

// latestApplication returns the most recent record for id, if any.
func (s *Session) latestApplication(id string) (AppliedIntervention, bool) {
	for i := len(s.Applied) - 1; i >= 0; i-- {
		if s.Applied[i].InterventionID == id {
			return s.Applied[i], true
		}
	}
	return AppliedIntervention{}, false
}

func messageTexts(in []timedMessage) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	for i, m := range in {
		out[i] = m.Text
	}
	return out
}
