package sim

import "github.com/brightward-health/pedsim/internal/vitals"

// driftKind names a natural deterioration process that an effective
// intervention can suppress while its effect window is open.
type driftKind int

const (
	driftHypoxia driftKind = iota
	driftFever
	driftTachypnea
	driftTachycardia
	driftSeizureRelapse
)

// effectSpec is the hand-authored outcome table for one intervention:
// a multi-vital improvement on success and a larger regression in the
// opposite direction on failure. Resolution is a registry lookup keyed by
// intervention id, so coverage is exhaustive and testable per id.
type effectSpec struct {
	Success vitals.Delta
	Failure vitals.Delta
	// Counters lists the drift processes this intervention suppresses while
	// effective. Duration is the effect window in seconds from application;
	// zero falls back to defaultEffectWindow.
	Counters    []driftKind
	Duration    int
	FailureText string
	SideEffect  string
}

const defaultEffectWindow = 120

func (e effectSpec) window() int {
	if e.Duration > 0 {
		return e.Duration
	}
	return defaultEffectWindow
}

func defaultEffects() map[string]effectSpec {
	return map[string]effectSpec{
		"airway_assessment": {
			Success:     vitals.Delta{OxygenSat: 8, RespRate: -3, HeartRate: -10, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{OxygenSat: -12, RespRate: 6, HeartRate: 15, ConsciousnessSteps: -1},
			FailureText: "Airway assessment delayed by poor positioning; patient deteriorating",
		},
		"oxygen_support": {
			Success:     vitals.Delta{OxygenSat: 15, RespRate: -5, HeartRate: -15},
			Failure:     vitals.Delta{OxygenSat: -8, RespRate: 8, HeartRate: 12},
			Counters:    []driftKind{driftHypoxia},
			FailureText: "Mask poorly tolerated; oxygen delivery ineffective",
		},
		"reposition_airway": {
			Success:     vitals.Delta{OxygenSat: 5, RespRate: -3},
			Failure:     vitals.Delta{OxygenSat: -6, RespRate: 5},
			FailureText: "Repositioning failed to open the airway",
		},
		"suction_airway": {
			Success:     vitals.Delta{OxygenSat: 6, RespRate: -4, HeartRate: -8},
			Failure:     vitals.Delta{OxygenSat: -8, HeartRate: 20},
			FailureText: "Suctioning provoked vagal bradycardia then rebound tachycardia",
		},
		"bag_mask_ventilation": {
			Success:     vitals.Delta{OxygenSat: 12, RespRate: -6, HeartRate: -10, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{OxygenSat: -10, HeartRate: 18, ConsciousnessSteps: -1},
			Counters:    []driftKind{driftHypoxia, driftTachypnea},
			Duration:    90,
			FailureText: "Poor mask seal; ventilation inadequate and stomach insufflating",
		},
		"intubation": {
			Success:     vitals.Delta{OxygenSat: 18, RespRate: -10, HeartRate: -12, SetConsciousness: vitals.Sedated},
			Failure:     vitals.Delta{OxygenSat: -18, HeartRate: 30, ConsciousnessSteps: -1},
			Counters:    []driftKind{driftHypoxia, driftTachypnea},
			Duration:    600,
			FailureText: "Oesophageal intubation recognised on capnography; tube withdrawn",
		},
		"iv_access": {
			Success:     vitals.Delta{HeartRate: -5},
			Failure:     vitals.Delta{HeartRate: 10},
			FailureText: "Two IV attempts blown; peripheral access still absent",
		},
		"io_access": {
			Success:     vitals.Delta{HeartRate: -5},
			Failure:     vitals.Delta{HeartRate: 12},
			FailureText: "IO needle misplaced with extravasation at the site",
		},
		"fluid_bolus": {
			Success:     vitals.Delta{HeartRate: -20, BPSystolic: 12, BPDiastolic: 6, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{HeartRate: 10, RespRate: 8, OxygenSat: -5},
			Counters:    []driftKind{driftTachycardia},
			FailureText: "Bolus ran too fast; pulmonary congestion developing",
		},
		"cardiac_monitor": {
			Success:     vitals.Delta{HeartRate: -3},
			Failure:     vitals.Delta{},
			FailureText: "Leads failing to capture a consistent trace",
		},
		"lorazepam_iv": {
			Success:     vitals.Delta{HeartRate: -25, RespRate: -4, SetConsciousness: vitals.PostIctal},
			Failure:     vitals.Delta{OxygenSat: -8, RespRate: -6, ConsciousnessSteps: -1},
			Counters:    []driftKind{driftSeizureRelapse},
			Duration:    300,
			FailureText: "Seizure continues despite benzodiazepine; respiratory depression emerging",
		},
		"diazepam_rectal": {
			Success:     vitals.Delta{HeartRate: -20, RespRate: -3, SetConsciousness: vitals.PostIctal},
			Failure:     vitals.Delta{OxygenSat: -6, ConsciousnessSteps: -1},
			Counters:    []driftKind{driftSeizureRelapse},
			Duration:    240,
			FailureText: "Rectal dose not absorbed; seizure activity persists",
		},
		"blood_glucose": {
			Success:     vitals.Delta{},
			Failure:     vitals.Delta{},
			FailureText: "Sample haemolysed; glucose unreadable",
		},
		"acetaminophen": {
			Success:     vitals.Delta{Temperature: -1.5, HeartRate: -10},
			Failure:     vitals.Delta{Temperature: 0.5, HeartRate: 8},
			Counters:    []driftKind{driftFever},
			Duration:    240,
			FailureText: "Dose vomited before absorption",
		},
		"cooling_measures": {
			Success:     vitals.Delta{Temperature: -1.0, HeartRate: -8},
			Failure:     vitals.Delta{HeartRate: 10},
			Counters:    []driftKind{driftFever},
			Duration:    180,
			FailureText: "Shivering response driving temperature back up",
		},
		"albuterol_nebulizer": {
			Success:     vitals.Delta{OxygenSat: 8, RespRate: -8, HeartRate: 10},
			Failure:     vitals.Delta{OxygenSat: -6, RespRate: 6, HeartRate: 20},
			Counters:    []driftKind{driftHypoxia, driftTachypnea},
			Duration:    180,
			FailureText: "Nebuliser poorly tolerated; minimal drug delivered",
		},
		"ipratropium": {
			Success:     vitals.Delta{OxygenSat: 4, RespRate: -4},
			Failure:     vitals.Delta{RespRate: 4},
			Counters:    []driftKind{driftTachypnea},
			Duration:    180,
			FailureText: "Added anticholinergic without clinical response",
		},
		"corticosteroids": {
			Success:     vitals.Delta{OxygenSat: 3, RespRate: -3},
			Failure:     vitals.Delta{RespRate: 3},
			Duration:    600,
			FailureText: "Oral steroid refused and vomited",
		},
		"magnesium_sulfate": {
			Success:     vitals.Delta{OxygenSat: 8, RespRate: -8, HeartRate: -10, BPSystolic: -5},
			Failure:     vitals.Delta{BPSystolic: -15, HeartRate: 15, OxygenSat: -4},
			Counters:    []driftKind{driftTachypnea},
			Duration:    300,
			FailureText: "Infusion run too fast; hypotension forcing a pause",
		},
		"epinephrine_im": {
			Success:     vitals.Delta{BPSystolic: 15, BPDiastolic: 8, OxygenSat: 6, RespRate: -6, HeartRate: 10, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{BPSystolic: -10, OxygenSat: -8, RespRate: 8, ConsciousnessSteps: -1},
			Counters:    []driftKind{driftHypoxia},
			Duration:    240,
			FailureText: "Dose landed subcutaneously; absorption too slow to help",
		},
		"antihistamine": {
			Success:     vitals.Delta{HeartRate: -8, RespRate: -2},
			Failure:     vitals.Delta{ConsciousnessSteps: -1},
			FailureText: "Marked drowsiness after antihistamine",
		},
		"antibiotics_iv": {
			Success:     vitals.Delta{HeartRate: -8, Temperature: -0.5},
			Failure:     vitals.Delta{HeartRate: 10, BPSystolic: -8},
			Duration:    600,
			FailureText: "Infusion reaction; antibiotics paused",
		},
		"blood_culture": {
			Success:     vitals.Delta{},
			Failure:     vitals.Delta{HeartRate: 5},
			FailureText: "Culture contaminated; draw must be repeated",
		},
		"vasopressor_infusion": {
			Success:     vitals.Delta{BPSystolic: 18, BPDiastolic: 10, HeartRate: -12, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{HeartRate: 25, BPSystolic: -8, OxygenSat: -4},
			Counters:    []driftKind{driftTachycardia},
			Duration:    600,
			FailureText: "Infusion line infiltrated; pressor support interrupted",
		},
		"emergency_airway_rescue": {
			Success:     vitals.Delta{OxygenSat: 14, RespRate: -8, HeartRate: -12, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{OxygenSat: -10, HeartRate: 20},
			Counters:    []driftKind{driftHypoxia},
			Duration:    90,
			FailureText: "Rescue ventilation struggling against a closing airway",
		},
		"rapid_cardiac_assessment": {
			Success:     vitals.Delta{HeartRate: -15},
			Failure:     vitals.Delta{HeartRate: 10},
			FailureText: "Rhythm uninterpretable through motion artefact",
		},
		"activate_response_team": {
			Success:     vitals.Delta{OxygenSat: 5, HeartRate: -10, BPSystolic: 8, ConsciousnessSteps: 1},
			Failure:     vitals.Delta{HeartRate: 5},
			Duration:    300,
			FailureText: "Response team delayed by a simultaneous arrest call",
		},
		"rapid_fluid_push": {
			Success:     vitals.Delta{BPSystolic: 15, BPDiastolic: 8, HeartRate: -15},
			Failure:     vitals.Delta{OxygenSat: -6, RespRate: 8},
			Counters:    []driftKind{driftTachycardia},
			FailureText: "Push-pull volume overshooting; crackles at the bases",
		},
		"active_cooling": {
			Success:     vitals.Delta{Temperature: -2.0, HeartRate: -12},
			Failure:     vitals.Delta{HeartRate: 10},
			Counters:    []driftKind{driftFever},
			Duration:    240,
			FailureText: "Cooling blanket provoking rigors",
		},
		"respiratory_escalation": {
			Success:     vitals.Delta{OxygenSat: 10, RespRate: -10, HeartRate: -8},
			Failure:     vitals.Delta{OxygenSat: -6, RespRate: 5},
			Counters:    []driftKind{driftHypoxia, driftTachypnea},
			Duration:    180,
			FailureText: "High-flow interface not tolerated",
		},
	}
}
