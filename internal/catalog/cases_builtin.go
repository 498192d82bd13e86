package catalog

import (
	"time"

	"github.com/brightward-health/pedsim/internal/vitals"
)

func builtInCases() []Case {
	vs := func(hr, rr, spo2, temp, sys, dia float64, c vitals.Consciousness) vitals.VitalSigns {
		return vitals.VitalSigns{
			HeartRate:     hr,
			RespRate:      rr,
			OxygenSat:     spo2,
			Temperature:   temp,
			BPSystolic:    sys,
			BPDiastolic:   dia,
			Consciousness: c,
		}
	}

	febrileSeizure := Case{
		ID:            "febrile_seizure",
		Name:          "Febrile Seizure, 18-Month-Old",
		Category:      "neurological",
		Difficulty:    "intermediate",
		EstimatedTime: 5 * time.Minute,
		ClinicalHistory: "18-month-old brought in by parents after three minutes of " +
			"generalised shaking at home. Two days of fever and coryza. No prior seizures.",
		PresentingSymptoms: []string{
			"active generalised tonic-clonic movements",
			"fever of 39.5C",
			"perioral cyanosis",
		},
		LearningObjectives: []string{
			"Secure the airway before drug therapy",
			"Time-appropriate benzodiazepine use",
			"Antipyresis and post-ictal monitoring",
		},
		InitialVitals: vs(165, 28, 94, 103.1, 95, 60, vitals.Seizing),
		IdealProgression: []string{
			"airway_assessment", "oxygen_support", "lorazepam_iv",
			"blood_glucose", "acetaminophen", "cooling_measures",
		},
		Stages: []Stage{
			{
				Number:      1,
				Description: "Active seizure on arrival",
				Vitals:      vs(165, 28, 94, 103.1, 95, 60, vitals.Seizing),
				AvailableIDs: []string{
					"airway_assessment", "oxygen_support", "reposition_airway",
					"suction_airway", "lorazepam_iv", "diazepam_rectal",
					"iv_access", "blood_glucose", "cardiac_monitor",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"airway_assessment", "oxygen_support", "lorazepam_iv"},
				BranchingConditions: []BranchCondition{
					{Name: "airway_compromised", Patch: vs(0, 45, 87, 0, 0, 0, vitals.Lethargic)},
				},
			},
			{
				Number:      2,
				Description: "Post-ictal with persistent fever",
				Vitals:      vs(150, 24, 95, 103.5, 92, 58, vitals.PostIctal),
				AvailableIDs: []string{
					"acetaminophen", "cooling_measures", "blood_glucose",
					"oxygen_support", "cardiac_monitor", "iv_access", "lorazepam_iv",
				},
				TimeLimit:       180 * time.Second,
				CriticalActions: []string{"acetaminophen", "cooling_measures"},
				BranchingConditions: []BranchCondition{
					{Name: "recurrent_seizure", Patch: vs(180, 0, 88, 0, 0, 0, vitals.Seizing)},
				},
			},
			{
				Number:      3,
				Description: "Reassessment and disposition",
				Vitals:      vs(130, 22, 97, 101.8, 94, 60, vitals.Drowsy),
				AvailableIDs: []string{
					"cardiac_monitor", "blood_glucose", "acetaminophen", "oxygen_support",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"cardiac_monitor"},
			},
		},
	}

	statusAsthmaticus := Case{
		ID:            "status_asthmaticus",
		Name:          "Status Asthmaticus, 7-Year-Old",
		Category:      "respiratory",
		Difficulty:    "intermediate",
		EstimatedTime: 6 * time.Minute,
		ClinicalHistory: "Known asthmatic, worsening over six hours despite home " +
			"salbutamol. Speaking in single words, tripod positioning.",
		PresentingSymptoms: []string{
			"severe work of breathing with retractions",
			"diffuse wheeze, prolonged expiration",
			"oxygen saturation 89% on room air",
		},
		LearningObjectives: []string{
			"Stacked bronchodilator therapy",
			"Early systemic steroids",
			"Recognising impending respiratory failure",
		},
		InitialVitals: vs(145, 48, 89, 99.2, 100, 65, vitals.Anxious),
		IdealProgression: []string{
			"oxygen_support", "albuterol_nebulizer", "corticosteroids",
			"ipratropium", "magnesium_sulfate",
		},
		Stages: []Stage{
			{
				Number:      1,
				Description: "Severe respiratory distress",
				Vitals:      vs(145, 48, 89, 99.2, 100, 65, vitals.Anxious),
				AvailableIDs: []string{
					"airway_assessment", "oxygen_support", "albuterol_nebulizer",
					"ipratropium", "corticosteroids", "cardiac_monitor", "iv_access",
				},
				TimeLimit:       150 * time.Second,
				CriticalActions: []string{"oxygen_support", "albuterol_nebulizer", "corticosteroids"},
				BranchingConditions: []BranchCondition{
					{Name: "respiratory_failure", Patch: vs(0, 60, 0, 0, 0, 0, vitals.Lethargic)},
				},
			},
			{
				Number:      2,
				Description: "Deteriorating exacerbation",
				Vitals:      vs(160, 55, 86, 99.4, 95, 60, vitals.Lethargic),
				AvailableIDs: []string{
					"bag_mask_ventilation", "magnesium_sulfate", "albuterol_nebulizer",
					"oxygen_support", "intubation", "io_access",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"magnesium_sulfate", "bag_mask_ventilation"},
				BranchingConditions: []BranchCondition{
					{Name: "improvement", Patch: vs(0, 40, 0, 0, 0, 0, vitals.Drowsy)},
				},
			},
			{
				Number:      3,
				Description: "Stabilisation on continuous therapy",
				Vitals:      vs(140, 36, 93, 99.0, 98, 62, vitals.Anxious),
				AvailableIDs: []string{
					"corticosteroids", "cardiac_monitor", "oxygen_support", "albuterol_nebulizer",
				},
				TimeLimit:       90 * time.Second,
				CriticalActions: []string{"cardiac_monitor"},
			},
		},
	}

	anaphylaxis := Case{
		ID:            "anaphylaxis",
		Name:          "Anaphylaxis, 5-Year-Old",
		Category:      "allergic",
		Difficulty:    "intermediate",
		EstimatedTime: 5 * time.Minute,
		ClinicalHistory: "Five minutes after eating a peanut-containing snack at a " +
			"birthday party. Widespread urticaria, audible stridor, and vomiting.",
		PresentingSymptoms: []string{
			"stridor with facial swelling",
			"widespread urticarial rash",
			"hypotension for age",
		},
		LearningObjectives: []string{
			"Epinephrine first, without delay",
			"Aggressive volume resuscitation for distributive shock",
			"Adjunct therapy only after epinephrine",
		},
		InitialVitals: vs(170, 40, 91, 98.9, 78, 45, vitals.Anxious),
		IdealProgression: []string{
			"epinephrine_im", "airway_assessment", "oxygen_support",
			"iv_access", "fluid_bolus", "antihistamine", "corticosteroids",
		},
		Stages: []Stage{
			{
				Number:      1,
				Description: "Acute reaction with stridor",
				Vitals:      vs(170, 40, 91, 98.9, 78, 45, vitals.Anxious),
				AvailableIDs: []string{
					"airway_assessment", "epinephrine_im", "oxygen_support",
					"iv_access", "cardiac_monitor",
				},
				TimeLimit:       90 * time.Second,
				CriticalActions: []string{"epinephrine_im", "airway_assessment"},
				BranchingConditions: []BranchCondition{
					{Name: "airway_compromised", Patch: vs(0, 55, 0, 0, 0, 0, vitals.Drowsy)},
				},
			},
			{
				Number:      2,
				Description: "Refractory distributive shock",
				Vitals:      vs(175, 44, 88, 98.8, 70, 40, vitals.Drowsy),
				AvailableIDs: []string{
					"epinephrine_im", "fluid_bolus", "io_access", "antihistamine",
					"bag_mask_ventilation", "vasopressor_infusion",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"fluid_bolus", "epinephrine_im"},
				BranchingConditions: []BranchCondition{
					{Name: "improvement", Patch: vs(0, 34, 0, 0, 88, 52, vitals.Anxious)},
				},
			},
			{
				Number:      3,
				Description: "Post-reaction observation",
				Vitals:      vs(140, 30, 95, 98.7, 90, 55, vitals.Anxious),
				AvailableIDs: []string{
					"antihistamine", "corticosteroids", "cardiac_monitor",
				},
				TimeLimit:       90 * time.Second,
				CriticalActions: []string{"corticosteroids"},
			},
		},
	}

	septicShock := Case{
		ID:            "septic_shock",
		Name:          "Septic Shock, 3-Year-Old",
		Category:      "infectious",
		Difficulty:    "advanced",
		EstimatedTime: 8 * time.Minute,
		ClinicalHistory: "Three days of fever and lethargy, now mottled with a " +
			"capillary refill of five seconds. Immunisations incomplete.",
		PresentingSymptoms: []string{
			"mottled, cool peripheries",
			"fever 40.1C with rigors",
			"delayed capillary refill",
		},
		LearningObjectives: []string{
			"First-hour fluid and antibiotic bundle",
			"Escalation to vasoactive support",
			"Continuous reassessment of perfusion",
		},
		InitialVitals: vs(175, 45, 92, 104.2, 80, 48, vitals.Irritable),
		IdealProgression: []string{
			"oxygen_support", "iv_access", "fluid_bolus", "blood_culture",
			"antibiotics_iv", "vasopressor_infusion",
		},
		Stages: []Stage{
			{
				Number:      1,
				Description: "Recognition of compensated shock",
				Vitals:      vs(175, 45, 92, 104.2, 80, 48, vitals.Irritable),
				AvailableIDs: []string{
					"airway_assessment", "oxygen_support", "iv_access", "io_access",
					"cardiac_monitor", "blood_glucose",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"iv_access", "oxygen_support"},
				BranchingConditions: []BranchCondition{
					{Name: "severe_exacerbation", Patch: vs(0, 50, 0, 0, 72, 42, vitals.Lethargic)},
				},
			},
			{
				Number:      2,
				Description: "Fluid resuscitation and source control",
				Vitals:      vs(180, 48, 90, 104.5, 72, 42, vitals.Lethargic),
				AvailableIDs: []string{
					"fluid_bolus", "blood_culture", "antibiotics_iv",
					"acetaminophen", "cardiac_monitor",
				},
				TimeLimit:       150 * time.Second,
				CriticalActions: []string{"fluid_bolus", "antibiotics_iv"},
				BranchingConditions: []BranchCondition{
					{Name: "respiratory_failure", Patch: vs(0, 55, 0, 0, 65, 38, vitals.Lethargic)},
				},
			},
			{
				Number:      3,
				Description: "Fluid-refractory shock",
				Vitals:      vs(185, 50, 88, 104.6, 65, 38, vitals.Lethargic),
				AvailableIDs: []string{
					"vasopressor_infusion", "fluid_bolus", "bag_mask_ventilation",
					"intubation", "io_access",
				},
				TimeLimit:       150 * time.Second,
				CriticalActions: []string{"vasopressor_infusion"},
				BranchingConditions: []BranchCondition{
					{Name: "improvement", Patch: vs(0, 38, 0, 0, 82, 48, vitals.Drowsy)},
				},
			},
			{
				Number:      4,
				Description: "Stabilisation and handover",
				Vitals:      vs(150, 34, 94, 102.8, 85, 50, vitals.Drowsy),
				AvailableIDs: []string{
					"cardiac_monitor", "antibiotics_iv", "acetaminophen", "oxygen_support",
				},
				TimeLimit:       120 * time.Second,
				CriticalActions: []string{"cardiac_monitor"},
			},
		},
	}

	return []Case{febrileSeizure, statusAsthmaticus, anaphylaxis, septicShock}
}
