// Package vitals holds the patient physiological state shared by the case
// catalog and the simulation engine. Every numeric vital is clamped to its
// physiological bounds on every mutation; no caller can push a value outside
// the ranges defined here.
package vitals

import "fmt"

type Consciousness string

const (
	Alert        Consciousness = "alert"
	Anxious      Consciousness = "anxious"
	Irritable    Consciousness = "irritable"
	Drowsy       Consciousness = "drowsy"
	Lethargic    Consciousness = "lethargic"
	PostIctal    Consciousness = "post-ictal"
	Seizing      Consciousness = "seizing"
	Unresponsive Consciousness = "unresponsive"
	Sedated      Consciousness = "sedated"
)

// Ladder rank used for the "improve one step" / "worsen one step"
// operations. Lower is better. Sedated sits outside the ladder and is only
// reachable through intubation-class effects.
func rank(c Consciousness) int {
	switch c {
	case Alert:
		return 0
	case Anxious, Irritable:
		return 1
	case Drowsy, Lethargic, PostIctal:
		return 2
	case Seizing, Unresponsive:
		return 3
	default:
		return 2
	}
}

// Improve steps consciousness one level toward alert. Sedated patients stay
// sedated until the sedation effect is cleared by the engine.
func Improve(c Consciousness) Consciousness {
	if c == Sedated {
		return Sedated
	}
	switch rank(c) {
	case 3:
		return Drowsy
	case 2:
		return Anxious
	case 1:
		return Alert
	default:
		return Alert
	}
}

// Worsen steps consciousness one level toward unresponsive.
func Worsen(c Consciousness) Consciousness {
	if c == Sedated {
		return Sedated
	}
	switch rank(c) {
	case 0:
		return Anxious
	case 1:
		return Drowsy
	default:
		return Unresponsive
	}
}

func IsWorseThan(a, b Consciousness) bool {
	return rank(a) > rank(b)
}

// VitalSigns is the full physiological snapshot. Temperature is Fahrenheit,
// blood pressure is carried as a systolic/diastolic pair and rendered as
// "sys/dia" on the wire.
type VitalSigns struct {
	HeartRate     float64       `json:"heart_rate"`
	RespRate      float64       `json:"resp_rate"`
	OxygenSat     float64       `json:"oxygen_sat"`
	Temperature   float64       `json:"temperature"`
	BPSystolic    float64       `json:"bp_systolic"`
	BPDiastolic   float64       `json:"bp_diastolic"`
	Consciousness Consciousness `json:"consciousness"`
}

func (v VitalSigns) BloodPressure() string {
	return fmt.Sprintf("%d/%d", int(v.BPSystolic), int(v.BPDiastolic))
}

// Physiological bounds. OxygenSatFloor is the normal lower clamp; once a
// terminal deterioration penalty has been applied the floor drops to
// OxygenSatTerminalFloor for the rest of the session.
const (
	HeartRateMin = 40
	HeartRateMax = 220

	RespRateMin = 8
	RespRateMax = 80

	OxygenSatFloor         = 70
	OxygenSatTerminalFloor = 60
	OxygenSatMax           = 100

	TemperatureMin = 95
	TemperatureMax = 107

	BPSystolicMin  = 40
	BPSystolicMax  = 200
	BPDiastolicMin = 25
	BPDiastolicMax = 120
)

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// Clamp forces every numeric vital back inside its bounds. terminal widens
// the oxygen saturation floor for end-stage deterioration paths.
func (v *VitalSigns) Clamp(terminal bool) {
	satFloor := float64(OxygenSatFloor)
	if terminal {
		satFloor = OxygenSatTerminalFloor
	}
	v.HeartRate = clampFloat(v.HeartRate, HeartRateMin, HeartRateMax)
	v.RespRate = clampFloat(v.RespRate, RespRateMin, RespRateMax)
	v.OxygenSat = clampFloat(v.OxygenSat, satFloor, OxygenSatMax)
	v.Temperature = clampFloat(v.Temperature, TemperatureMin, TemperatureMax)
	v.BPSystolic = clampFloat(v.BPSystolic, BPSystolicMin, BPSystolicMax)
	v.BPDiastolic = clampFloat(v.BPDiastolic, BPDiastolicMin, BPDiastolicMax)
	if v.Consciousness == "" {
		v.Consciousness = Alert
	}
}

// Delta is a bounded multi-vital adjustment. ConsciousnessSteps moves the
// patient along the ladder (positive improves, negative worsens);
// SetConsciousness, when non-empty, overrides the ladder outright.
type Delta struct {
	HeartRate          float64
	RespRate           float64
	OxygenSat          float64
	Temperature        float64
	BPSystolic         float64
	BPDiastolic        float64
	ConsciousnessSteps int
	SetConsciousness   Consciousness
}

// Apply mutates v by d and re-clamps. It never fails: out-of-range inputs
// are absorbed by the bounds.
func (v *VitalSigns) Apply(d Delta, terminal bool) {
	v.HeartRate += d.HeartRate
	v.RespRate += d.RespRate
	v.OxygenSat += d.OxygenSat
	v.Temperature += d.Temperature
	v.BPSystolic += d.BPSystolic
	v.BPDiastolic += d.BPDiastolic

	switch {
	case d.SetConsciousness != "":
		v.Consciousness = d.SetConsciousness
	case d.ConsciousnessSteps > 0:
		for i := 0; i < d.ConsciousnessSteps; i++ {
			v.Consciousness = Improve(v.Consciousness)
		}
	case d.ConsciousnessSteps < 0:
		for i := 0; i > d.ConsciousnessSteps; i-- {
			v.Consciousness = Worsen(v.Consciousness)
		}
	}

	v.Clamp(terminal)
}

// Merge overlays the non-zero fields of patch onto v, used when a branching
// condition carries a vitals patch into the next stage.
func (v *VitalSigns) Merge(patch VitalSigns, terminal bool) {
	if patch.HeartRate != 0 {
		v.HeartRate = patch.HeartRate
	}
	if patch.RespRate != 0 {
		v.RespRate = patch.RespRate
	}
	if patch.OxygenSat != 0 {
		v.OxygenSat = patch.OxygenSat
	}
	if patch.Temperature != 0 {
		v.Temperature = patch.Temperature
	}
	if patch.BPSystolic != 0 {
		v.BPSystolic = patch.BPSystolic
	}
	if patch.BPDiastolic != 0 {
		v.BPDiastolic = patch.BPDiastolic
	}
	if patch.Consciousness != "" {
		v.Consciousness = patch.Consciousness
	}
	v.Clamp(terminal)
}
