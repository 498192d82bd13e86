package catalog

import "time"

const (
	sec = time.Second
)

func builtInInterventions() []Intervention {
	build := func(id, name string, cat Category, timeRequired time.Duration, successRate float64, desc string) Intervention {
		return Intervention{
			ID:           id,
			Name:         name,
			Description:  desc,
			Category:     cat,
			TimeRequired: timeRequired,
			SuccessRate:  successRate,
		}
	}

	return []Intervention{
		// Airway and breathing.
		build("airway_assessment", "Airway Assessment", CategoryCritical, 10*sec, 0.95,
			"Position the head, inspect the airway, and confirm patency."),
		build("oxygen_support", "High-Flow Oxygen", CategoryCritical, 15*sec, 0.90,
			"Deliver high-flow oxygen via non-rebreather mask."),
		build("reposition_airway", "Reposition Airway", CategorySupportive, 10*sec, 0.90,
			"Head-tilt chin-lift or jaw thrust to open the airway."),
		build("suction_airway", "Suction Airway", CategoryProcedure, 15*sec, 0.85,
			"Clear secretions or vomitus from the oropharynx."),
		build("bag_mask_ventilation", "Bag-Mask Ventilation", CategoryEmergency, 15*sec, 0.88,
			"Assist ventilation with a bag-valve mask at age-appropriate rate."),
		build("intubation", "Endotracheal Intubation", CategoryProcedure, 60*sec, 0.75,
			"Rapid-sequence intubation with an appropriately sized tube."),

		// Circulation and access.
		build("iv_access", "IV Access", CategoryProcedure, 30*sec, 0.80,
			"Establish peripheral intravenous access."),
		build("io_access", "IO Access", CategoryEmergency, 15*sec, 0.90,
			"Drill intraosseous access when IV attempts fail or time is short."),
		build("fluid_bolus", "Fluid Bolus 20 mL/kg", CategoryMedication, 45*sec, 0.85,
			"Isotonic crystalloid bolus, reassess perfusion after each."),
		build("cardiac_monitor", "Cardiac Monitor", CategoryMonitoring, 15*sec, 0.95,
			"Attach continuous ECG monitoring."),

		// Seizure control and neuro.
		build("lorazepam_iv", "Lorazepam IV", CategoryMedication, 20*sec, 0.85,
			"First-line benzodiazepine for active seizure, 0.1 mg/kg IV."),
		build("diazepam_rectal", "Rectal Diazepam", CategoryMedication, 15*sec, 0.80,
			"Benzodiazepine via rectal route when no access is available."),
		build("blood_glucose", "Bedside Glucose", CategoryMonitoring, 10*sec, 0.95,
			"Rule out hypoglycaemia as a seizure cause."),

		// Fever control.
		build("acetaminophen", "Acetaminophen", CategoryMedication, 15*sec, 0.90,
			"Weight-based antipyretic dosing."),
		build("cooling_measures", "Passive Cooling", CategorySupportive, 30*sec, 0.95,
			"Remove excess clothing, tepid environment."),

		// Respiratory pharmacology.
		build("albuterol_nebulizer", "Albuterol Nebulizer", CategoryMedication, 45*sec, 0.85,
			"Continuous or intermittent beta-agonist nebulisation."),
		build("ipratropium", "Ipratropium Bromide", CategoryMedication, 30*sec, 0.80,
			"Anticholinergic added to the first hour of bronchodilators."),
		build("corticosteroids", "Systemic Corticosteroids", CategoryMedication, 20*sec, 0.85,
			"Oral or IV steroids to blunt airway inflammation."),
		build("magnesium_sulfate", "Magnesium Sulfate IV", CategoryMedication, 45*sec, 0.75,
			"Second-line bronchodilation in severe exacerbation."),

		// Anaphylaxis and sepsis.
		build("epinephrine_im", "Epinephrine IM", CategoryEmergency, 10*sec, 0.90,
			"Intramuscular epinephrine to the anterolateral thigh."),
		build("antihistamine", "Diphenhydramine", CategoryMedication, 20*sec, 0.85,
			"Adjunct antihistamine after epinephrine."),
		build("antibiotics_iv", "Broad-Spectrum Antibiotics", CategoryMedication, 30*sec, 0.85,
			"Empiric antibiotics within the first hour of recognised sepsis."),
		build("blood_culture", "Blood Cultures", CategoryProcedure, 30*sec, 0.80,
			"Draw cultures before antibiotics when it does not delay them."),
		build("vasopressor_infusion", "Vasopressor Infusion", CategoryMedication, 40*sec, 0.75,
			"Start peripheral epinephrine infusion for fluid-refractory shock."),

		// Rapid-response escalations, surfaced when vitals cross critical
		// thresholds. Short and high-yield, mirroring PALS algorithms.
		build("emergency_airway_rescue", "Emergency Airway Rescue", CategoryEmergency, 10*sec, 0.92,
			"Immediate two-person bag-mask with airway adjunct."),
		build("rapid_cardiac_assessment", "Rapid Cardiac Assessment", CategoryEmergency, 10*sec, 0.90,
			"Rhythm check and pulse quality assessment."),
		build("activate_response_team", "Activate Response Team", CategoryEmergency, 5*sec, 0.95,
			"Summon the paediatric rapid response team to the bedside."),
		build("rapid_fluid_push", "Rapid Fluid Push", CategoryEmergency, 15*sec, 0.88,
			"Push-pull crystalloid for decompensating perfusion."),
		build("active_cooling", "Active Cooling", CategoryEmergency, 15*sec, 0.90,
			"Cooling blanket and antipyretic escalation for extreme fever."),
		build("respiratory_escalation", "Respiratory Escalation", CategoryEmergency, 10*sec, 0.90,
			"Escalate to high-flow support with continuous monitoring."),
	}
}
