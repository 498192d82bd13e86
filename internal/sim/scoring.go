package sim

import (
	"fmt"
	"strings"
)

// Result is the terminal, authoritative outcome of a session. It is
// computed exactly once, when the last stage ends, from the session history
// alone; nothing mutates it afterwards.
type Result struct {
	Score             int      `json:"score"`
	Feedback          []string `json:"feedback"`
	CriticalRequired  int      `json:"critical_required"`
	CriticalCompleted int      `json:"critical_completed"`
	TimeRatio         float64  `json:"time_ratio"`
}

// Weighting: 70% critical actions, 20% time efficiency, 10% intervention
// quality (share of applied interventions with a catalog success rate above
// 0.7).
func (s *Simulation) scoreResult() Result {
	sess := s.session

	required := map[string]bool{}
	var requiredOrder []string
	for _, stage := range s.kase.Stages {
		for _, id := range stage.CriticalActions {
			if !required[id] {
				required[id] = true
				requiredOrder = append(requiredOrder, id)
			}
		}
	}

	succeeded := map[string]bool{}
	for _, a := range sess.Applied {
		if a.Success {
			succeeded[a.InterventionID] = true
		}
	}

	completed := 0
	var missed []string
	for _, id := range requiredOrder {
		if succeeded[id] {
			completed++
		} else {
			missed = append(missed, s.interventionName(id))
		}
	}

	criticalScore := 70.0
	if len(requiredOrder) > 0 {
		criticalScore = 70.0 * float64(completed) / float64(len(requiredOrder))
	}

	ratio := 0.0
	if s.kase.EstimatedTime > 0 {
		ratio = float64(sess.TimeElapsed) / s.kase.EstimatedTime.Seconds()
	}
	var timeScore float64
	var timeMessage string
	switch {
	case ratio <= 1.2:
		timeScore, timeMessage = 20, "Excellent pace: the case finished inside the expected window."
	case ratio <= 1.5:
		timeScore, timeMessage = 15, "Good pace, though some decisions took longer than ideal."
	case ratio < 2.0:
		timeScore, timeMessage = 10, "The case ran well over the expected time; practise committing to actions sooner."
	default:
		timeScore, timeMessage = 0, "The case took more than twice the expected time; delays like this cost outcomes."
	}

	qualityScore := 0.0
	if len(sess.Applied) > 0 {
		highYield := 0
		for _, a := range sess.Applied {
			if iv, err := s.cat.Intervention(a.InterventionID); err == nil && iv.SuccessRate > 0.7 {
				highYield++
			}
		}
		qualityScore = 10.0 * float64(highYield) / float64(len(sess.Applied))
	}

	score := int(criticalScore + timeScore + qualityScore)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var feedback []string
	if len(missed) > 0 {
		feedback = append(feedback, "Missed critical actions: "+strings.Join(missed, ", "))
	}
	feedback = append(feedback, timeMessage)
	feedback = append(feedback, performanceTier(score))
	feedback = append(feedback, categoryPointers(s.kase.Category)...)
	if len(missed) > 0 && len(s.kase.IdealProgression) > 0 {
		names := make([]string, len(s.kase.IdealProgression))
		for i, id := range s.kase.IdealProgression {
			names[i] = s.interventionName(id)
		}
		feedback = append(feedback, "Ideal progression for this case: "+strings.Join(names, " -> "))
	}

	return Result{
		Score:             score,
		Feedback:          feedback,
		CriticalRequired:  len(requiredOrder),
		CriticalCompleted: completed,
		TimeRatio:         ratio,
	}
}

func (s *Simulation) interventionName(id string) string {
	if iv, err := s.cat.Intervention(id); err == nil {
		return iv.Name
	}
	return id
}

func performanceTier(score int) string {
	switch {
	case score >= 90:
		return fmt.Sprintf("Outstanding performance (%d/100): assessment and treatment were tightly sequenced.", score)
	case score >= 75:
		return fmt.Sprintf("Strong performance (%d/100): solid management with room to tighten priorities.", score)
	case score >= 60:
		return fmt.Sprintf("Fair performance (%d/100): key steps happened but ordering and timing need work.", score)
	default:
		return fmt.Sprintf("Needs improvement (%d/100): review the case objectives and re-run the scenario.", score)
	}
}

func categoryPointers(category string) []string {
	switch category {
	case "neurological":
		return []string{
			"Airway and oxygen always precede anticonvulsants in an actively seizing child.",
			"Check glucose early: hypoglycaemia is a reversible seizure cause.",
		}
	case "respiratory":
		return []string{
			"Stack bronchodilators with early steroids; do not wait for failure to escalate.",
			"A quiet chest in severe asthma is a pre-arrest sign, not an improvement.",
		}
	case "allergic":
		return []string{
			"Epinephrine IM is first-line and repeatable; antihistamines are adjuncts only.",
			"Distributive shock needs volume: reassess after every bolus.",
		}
	case "infectious":
		return []string{
			"Deliver the first-hour bundle: access, cultures, antibiotics, and fluids.",
			"Escalate to vasoactive support once shock is fluid-refractory.",
		}
	default:
		return nil
	}
}
