// Package catalog defines the immutable clinical content the engine runs
// against: the intervention library and the case library. The catalog is
// fully constructed before any session starts; the engine never mutates it.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/brightward-health/pedsim/internal/vitals"
)

var (
	ErrCaseNotFound         = errors.New("case not found")
	ErrInterventionNotFound = errors.New("intervention not found")
)

type Category string

const (
	CategoryCritical   Category = "critical"
	CategoryEmergency  Category = "emergency"
	CategoryMedication Category = "medication"
	CategoryProcedure  Category = "procedure"
	CategoryMonitoring Category = "monitoring"
	CategorySupportive Category = "supportive"
)

// CooldownMultiplier scales an intervention's timeRequired into its reuse
// cooldown. Higher-acuity categories come off cooldown almost immediately so
// emergency actions stay repeatable.
func (c Category) CooldownMultiplier() float64 {
	switch c {
	case CategoryCritical:
		return 0.1
	case CategoryEmergency:
		return 0.2
	case CategoryMedication:
		return 0.3
	case CategoryProcedure:
		return 0.4
	default:
		return 0.5
	}
}

type Intervention struct {
	ID           string
	Name         string
	Description  string
	Category     Category
	TimeRequired time.Duration
	SuccessRate  float64
}

// Cooldown is the interval after application during which the intervention
// cannot be reapplied, floored at five seconds.
func (i Intervention) Cooldown() time.Duration {
	cd := time.Duration(float64(i.TimeRequired) * i.Category.CooldownMultiplier())
	if cd < 5*time.Second {
		cd = 5 * time.Second
	}
	return cd
}

// BranchCondition names one of the fixed vitals predicates. When the
// predicate holds the stage advances early and Patch is merged into the
// current vitals.
type BranchCondition struct {
	Name  string
	Patch vitals.VitalSigns
}

// Holds reports whether the named predicate is true for v. Unknown names
// never hold, so a miskeyed case definition degrades to a no-op rather than
// a wrong transition.
func (b BranchCondition) Holds(v vitals.VitalSigns) bool {
	switch b.Name {
	case "airway_compromised":
		return v.OxygenSat < 90
	case "recurrent_seizure":
		return v.Consciousness == vitals.Seizing
	case "respiratory_failure":
		return v.OxygenSat < 85
	case "severe_exacerbation":
		return v.OxygenSat < 88
	case "improvement":
		return v.OxygenSat > 92
	default:
		return false
	}
}

type Stage struct {
	Number              int
	Description         string
	Vitals              vitals.VitalSigns
	AvailableIDs        []string
	TimeLimit           time.Duration // zero means untimed
	CriticalActions     []string
	BranchingConditions []BranchCondition
}

type Case struct {
	ID                 string
	Name               string
	Category           string
	Difficulty         string
	EstimatedTime      time.Duration
	Stages             []Stage
	ClinicalHistory    string
	PresentingSymptoms []string
	LearningObjectives []string
	InitialVitals      vitals.VitalSigns
	// Ordered hints used only when generating feedback, never enforced.
	IdealProgression []string
}

type Catalog struct {
	interventions map[string]Intervention
	cases         map[string]Case
	caseOrder     []string
}

// Load builds the immutable built-in catalog. The engine takes the result by
// value at session start; there is no post-load population window.
func Load() *Catalog {
	c := &Catalog{
		interventions: make(map[string]Intervention),
		cases:         make(map[string]Case),
	}
	for _, iv := range builtInInterventions() {
		c.interventions[iv.ID] = iv
	}
	for _, cs := range builtInCases() {
		c.cases[cs.ID] = cs
		c.caseOrder = append(c.caseOrder, cs.ID)
	}
	return c
}

func (c *Catalog) Intervention(id string) (Intervention, error) {
	iv, ok := c.interventions[id]
	if !ok {
		return Intervention{}, fmt.Errorf("%w: %s", ErrInterventionNotFound, id)
	}
	return iv, nil
}

func (c *Catalog) Case(id string) (Case, error) {
	cs, ok := c.cases[id]
	if !ok {
		return Case{}, fmt.Errorf("%w: %s", ErrCaseNotFound, id)
	}
	return cs, nil
}

// Cases returns the case library in definition order.
func (c *Catalog) Cases() []Case {
	out := make([]Case, 0, len(c.caseOrder))
	for _, id := range c.caseOrder {
		out = append(out, c.cases[id])
	}
	return out
}

func (c *Catalog) Interventions() []Intervention {
	out := make([]Intervention, 0, len(c.interventions))
	for _, iv := range c.interventions {
		out = append(out, iv)
	}
	return out
}
