package utils

import (
	"errors"
	"math"
	"strings"
)

// Calorie-goal utilities.
//
// EstimateMaintenanceCalories estimates maintenance calories (TDEE) from a
// Mifflin–St Jeor BMR and a standard activity multiplier; ApplyGoalAdjustment
// shifts maintenance by a percentage for a lose/gain goal.

// ErrIncompleteProfile means age, height or weight is missing, so no
// estimate can be produced. Callers treat it as "ask the user to complete
// their profile", not as a failure.
var ErrIncompleteProfile = errors.New("profile incomplete: age, height_cm and weight_kg are required")

// MinDailyCalories is a safety floor against pathological inputs.
const MinDailyCalories = 800

// Default adjustment percentages for lose/gain goals.
const (
	DefaultLosePct = 0.15
	DefaultGainPct = 0.15
)

// ProfileMetrics are the inputs of the maintenance estimate.
type ProfileMetrics struct {
	Age           int
	Sex           string
	HeightCm      float64
	WeightKg      float64
	ActivityLevel string
}

// GoalOptions overrides the default lose/gain percentages. Zero or negative
// values fall back to the defaults.
type GoalOptions struct {
	LosePct float64
	GainPct float64
}

// NormalizeSex maps free-form input to male | female | other.
func NormalizeSex(sex string) string {
	switch strings.ToLower(strings.TrimSpace(sex)) {
	case "m", "male":
		return "male"
	case "f", "female":
		return "female"
	default:
		return "other"
	}
}

// NormalizeGoal maps free-form input to lose | maintain | gain, defaulting
// to maintain.
func NormalizeGoal(goal string) string {
	switch strings.ToLower(strings.TrimSpace(goal)) {
	case "lose":
		return "lose"
	case "gain":
		return "gain"
	default:
		return "maintain"
	}
}

// ActivityMultiplier returns the TDEE multiplier for an activity level.
// Matching is case-insensitive. "low" and "high" are legacy aliases from
// older onboarding forms; unrecognized input counts as sedentary.
func ActivityMultiplier(activityLevel string) float64 {
	switch strings.ToLower(strings.TrimSpace(activityLevel)) {
	case "sedentary", "low":
		return 1.2
	case "light":
		return 1.375
	case "moderate":
		return 1.55
	case "active", "high":
		return 1.725
	case "very_active":
		return 1.9
	default:
		return 1.2
	}
}

// EstimateMaintenanceCalories returns maintenance calories (kcal/day) for
// the given metrics, or ErrIncompleteProfile when age, height or weight is
// missing or invalid.
//
// Mifflin–St Jeor:
//
//	male:   BMR = 10w + 6.25h - 5a + 5
//	female: BMR = 10w + 6.25h - 5a - 161
//	other:  midpoint of the two constants (-78) — an explicit policy choice
//	        for non-binary/unspecified input.
func EstimateMaintenanceCalories(m ProfileMetrics) (int, error) {
	a := float64(m.Age)
	if a <= 0 || m.HeightCm <= 0 || m.WeightKg <= 0 ||
		!isFinite(a) || !isFinite(m.HeightCm) || !isFinite(m.WeightKg) {
		return 0, ErrIncompleteProfile
	}

	base := 10*m.WeightKg + 6.25*m.HeightCm - 5*a
	var bmr float64
	switch NormalizeSex(m.Sex) {
	case "male":
		bmr = base + 5
	case "female":
		bmr = base - 161
	default:
		bmr = base + (5-161)/2.0
	}

	tdee := bmr * ActivityMultiplier(m.ActivityLevel)
	return clampCalories(tdee), nil
}

// ApplyGoalAdjustment shifts maintenance calories by the goal percentage:
// lose -15%, gain +15%, maintain unchanged (defaults overridable via opts).
func ApplyGoalAdjustment(maintenance int, goal string, opts GoalOptions) (int, error) {
	base := float64(maintenance)
	if !isFinite(base) {
		return 0, ErrIncompleteProfile
	}

	losePct, gainPct := DefaultLosePct, DefaultGainPct
	if opts.LosePct > 0 {
		losePct = opts.LosePct
	}
	if opts.GainPct > 0 {
		gainPct = opts.GainPct
	}

	multiplier := 1.0
	switch NormalizeGoal(goal) {
	case "lose":
		multiplier = 1 - losePct
	case "gain":
		multiplier = 1 + gainPct
	}

	return clampCalories(base * multiplier), nil
}

// CalculateRecommendedCalories is the maintenance estimate adjusted by goal.
func CalculateRecommendedCalories(m ProfileMetrics, goal string, opts GoalOptions) (int, error) {
	maintenance, err := EstimateMaintenanceCalories(m)
	if err != nil {
		return 0, err
	}
	return ApplyGoalAdjustment(maintenance, goal, opts)
}

func clampCalories(kcal float64) int {
	rounded := int(math.Round(kcal))
	if rounded < MinDailyCalories {
		return MinDailyCalories
	}
	return rounded
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
