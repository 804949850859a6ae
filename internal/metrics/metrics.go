// Package metrics derives body metrics (BMI, BMR, TDEE, calorie target)
// from user-submitted biometrics. All functions are pure; the only error
// condition is a non-positive height.
package metrics

import (
	"errors"
	"strings"
)

// ErrNonPositiveHeight is returned when a height of zero or below is
// submitted. BMI is undefined for such inputs.
var ErrNonPositiveHeight = errors.New("height must be greater than zero")

// Goal values accepted by TargetCalories. GoalAuto resolves to one of the
// other three from the BMI thresholds.
const (
	GoalAuto     = "auto"
	GoalLose     = "lose"
	GoalGain     = "gain"
	GoalMaintain = "maintain"
)

// Input is one form submission, already parsed into numbers. Weight and
// height are in the unit system named by Units ("metric" or "imperial").
type Input struct {
	Weight   float64
	Height   float64
	Age      int
	Sex      string
	Activity string
	Goal     string
	Units    string
	Diet     string
}

// Derived carries everything the prompt builder and the result page need.
type Derived struct {
	BMI            float64
	TDEE           float64
	TargetCalories float64
	// Goal is the resolved goal: never "auto".
	Goal string
}

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels. Unknown
// levels fall back to the sedentary multiplier.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
	"very":      1.9,
}

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 { return lbs * 0.45359237 }

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 { return kg / 0.45359237 }

// InchesToCm converts inches to centimeters.
func InchesToCm(in float64) float64 { return in * 2.54 }

// CmToInches converts centimeters to inches.
func CmToInches(cm float64) float64 { return cm / 2.54 }

// BMI computes weight(kg) / height(m)².
func BMI(weightKg, heightCm float64) (float64, error) {
	if heightCm <= 0 {
		return 0, ErrNonPositiveHeight
	}
	heightM := heightCm / 100.0
	return weightKg / (heightM * heightM), nil
}

// BMR estimates the basal metabolic rate via Mifflin-St Jeor. Any sex
// string starting with "m" (case-insensitive) uses the male constant.
func BMR(weightKg, heightCm float64, age int, sex string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.HasPrefix(strings.ToLower(sex), "m") {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE is BMR scaled by the activity multiplier.
func TDEE(weightKg, heightCm float64, age int, sex, activity string) float64 {
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	return BMR(weightKg, heightCm, age, sex) * mult
}

// ResolveGoal maps GoalAuto to a concrete goal using the standard BMI
// thresholds (25 and 18.5). Concrete goals pass through unchanged.
func ResolveGoal(goal string, bmi float64) string {
	if goal != GoalAuto {
		return goal
	}
	switch {
	case bmi >= 25:
		return GoalLose
	case bmi < 18.5:
		return GoalGain
	default:
		return GoalMaintain
	}
}

// TargetCalories adjusts TDEE by a fixed offset per goal: −500 for loss,
// +300 for gain, unchanged for maintenance.
func TargetCalories(tdee, bmi float64, goal string) float64 {
	switch ResolveGoal(goal, bmi) {
	case GoalLose:
		return tdee - 500
	case GoalGain:
		return tdee + 300
	default:
		return tdee
	}
}

// Compute converts in to metric if needed and derives BMI, TDEE and the
// calorie target in one pass.
func Compute(in Input) (Derived, error) {
	weight, height := in.Weight, in.Height
	if in.Units == "imperial" {
		weight = LbsToKg(weight)
		height = InchesToCm(height)
	}

	bmi, err := BMI(weight, height)
	if err != nil {
		return Derived{}, err
	}
	tdee := TDEE(weight, height, in.Age, in.Sex, in.Activity)

	return Derived{
		BMI:            bmi,
		TDEE:           tdee,
		TargetCalories: TargetCalories(tdee, bmi, in.Goal),
		Goal:           ResolveGoal(in.Goal, bmi),
	}, nil
}
