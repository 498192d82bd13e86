package sim

import (
	"strings"

	"github.com/brightward-health/pedsim/internal/vitals"
)

const (
	warnCritical = "less than 30 seconds remaining"
	warnRunning  = "time running out"
	warnExpired  = "time expired"
)

// checkTimePressure runs every five ticks on timed stages. Warnings are
// one-shot per stage, deduplicated by message substring; the critical band
// also charges a small vitals penalty on every check. Stage transitions
// stay the stage controller's job; this subsystem only touches vitals and
// the event feed.
func (s *Simulation) checkTimePressure() {
	stage := s.currentStageDef()
	if stage.TimeLimit <= 0 {
		return
	}
	remaining := int(stage.TimeLimit.Seconds()) - s.session.StageTime

	switch {
	case remaining <= 0:
		if !s.stageExpired {
			s.stageExpired = true
			s.session.Terminal = true
			s.warnOnce(warnExpired, "Stage time expired; the patient is crashing")
			s.session.Vitals.Apply(vitals.Delta{
				OxygenSat:        -10,
				HeartRate:        20,
				BPSystolic:       -15,
				SetConsciousness: vitals.Unresponsive,
			}, s.session.Terminal)
		}
	case remaining <= 30:
		s.warnOnce(warnCritical, "CRITICAL: less than 30 seconds remaining in this stage")
		s.session.Vitals.Apply(vitals.Delta{OxygenSat: -1, HeartRate: 2}, s.session.Terminal)
	case remaining <= 60:
		s.warnOnce(warnRunning, "Time running out for this stage; act now")
	}
}

// warnOnce appends the message unless a warning containing key has already
// fired in this stage.
func (s *Simulation) warnOnce(key, message string) {
	if s.warned[key] {
		return
	}
	for _, e := range s.session.events {
		if strings.Contains(strings.ToLower(e.Text), key) {
			s.warned[key] = true
			return
		}
	}
	s.warned[key] = true
	s.session.addEvent(message)
}
