package dailylogs

import "github.com/silvermint/pawtrack/pkg/pets"

// Targets lists a pet's recommended daily rations, derived from its species and the
// weight submitted with the log: grams of food, millilitres of water, minutes of activity.
type Targets struct {
	Food     float64
	Water    float64
	Activity float64
}

// per kilogram guideline coefficients
const (
	catFoodPerKg  = 22.5
	catWaterPerKg = 55.0
	catActivity   = 20.0
	dogFoodPerKg  = 20.0
	dogWaterPerKg = 60.0
	dogActivity   = 60.0
)

func RationTargets(species pets.Species, weight float64) Targets {
	if weight < 0 {
		weight = 0
	}
	if species == pets.Cat {
		return Targets{catFoodPerKg * weight, catWaterPerKg * weight, catActivity}
	}
	return Targets{dogFoodPerKg * weight, dogWaterPerKg * weight, dogActivity}
}

type Verdict string

const (
	Unknown  Verdict = "unknown" // missing measurement or unusable target
	Short    Verdict = "short"
	Adequate Verdict = "adequate"
	Excess   Verdict = "excess"
)

// Judge compares a measurement against its target, within the given tolerance band.
func Judge(value *float64, target, lowRatio, highRatio float64) Verdict {
	if value == nil || target <= 0 {
		return Unknown
	}
	switch {
	case *value < target*lowRatio:
		return Short
	case *value > target*highRatio:
		return Excess
	}
	return Adequate
}

// intake tolerances; activity gets a tighter band as its target is a flat figure
const (
	intakeLowRatio    = 0.7
	intakeHighRatio   = 1.3
	activityLowRatio  = 0.9
	activityHighRatio = 1.2
)

// Report pairs each submitted metric with its verdict, alongside the computed targets.
type Report struct {
	Targets  Targets
	Food     Verdict
	Water    Verdict
	Activity Verdict
}

func assess(species pets.Species, data AddLogData) Report {
	var weight float64
	if data.Weight != nil {
		weight = *data.Weight
	}

	var targets = RationTargets(species, weight)
	return Report{
		Targets:  targets,
		Food:     Judge(data.Food, targets.Food, intakeLowRatio, intakeHighRatio),
		Water:    Judge(data.Water, targets.Water, intakeLowRatio, intakeHighRatio),
		Activity: Judge(data.Activity, targets.Activity, activityLowRatio, activityHighRatio),
	}
}
