package models

import (
	"gorm.io/gorm"
)

// Profile holds the inputs of the calorie-goal calculation, one row per user.
//
// CalculatedCalorieGoal is recomputed on every save because any of the
// inputs may have changed. CustomCalorieGoal is a user override; when set it
// wins over the calculated value (see EffectiveCalorieGoal).
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Age           int     `json:"age"`
	Sex           string  `json:"sex"` // male | female | other
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"` // sedentary|light|moderate|active|very_active (legacy: low, high)
	Goal          string  `gorm:"default:maintain" json:"goal"` // lose | maintain | gain

	CalculatedCalorieGoal int  `json:"calculated_calorie_goal"`
	CustomCalorieGoal     *int `json:"custom_calorie_goal"`
}

// EffectiveCalorieGoal is the override if present, else the calculated value.
func (p Profile) EffectiveCalorieGoal() int {
	if p.CustomCalorieGoal != nil && *p.CustomCalorieGoal > 0 {
		return *p.CustomCalorieGoal
	}
	return p.CalculatedCalorieGoal
}
