package services

import (
	"context"

	"nutritracker/models"
	"nutritracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileService struct{ db *gorm.DB }

func NewProfileService(db *gorm.DB) *ProfileService { return &ProfileService{db: db} }

type ProfileInput struct {
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	// Either field sets the override; custom_calorie_goal wins when both are
	// sent (calorie_goal is what older clients used).
	CustomCalorieGoal *int `json:"custom_calorie_goal"`
	CalorieGoal       *int `json:"calorie_goal"`
}

func (in ProfileInput) customGoal() *int {
	if in.CustomCalorieGoal != nil {
		return in.CustomCalorieGoal
	}
	return in.CalorieGoal
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert saves the profile and recalculates the calorie goal, since any of
// the calculation inputs may have changed. Returns
// utils.ErrIncompleteProfile when age, height or weight is missing.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	goal := utils.NormalizeGoal(in.Goal)
	calculated, err := utils.CalculateRecommendedCalories(utils.ProfileMetrics{
		Age:           in.Age,
		Sex:           in.Sex,
		HeightCm:      in.HeightCm,
		WeightKg:      in.WeightKg,
		ActivityLevel: in.ActivityLevel,
	}, goal, utils.GoalOptions{})
	if err != nil {
		return nil, err
	}

	profile := models.Profile{
		UserID:                userID,
		Age:                   in.Age,
		Sex:                   utils.NormalizeSex(in.Sex),
		HeightCm:              in.HeightCm,
		WeightKg:              in.WeightKg,
		ActivityLevel:         in.ActivityLevel,
		Goal:                  goal,
		CalculatedCalorieGoal: calculated,
		CustomCalorieGoal:     in.customGoal(),
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"age", "sex", "height_cm", "weight_kg", "activity_level",
			"goal", "calculated_calorie_goal", "custom_calorie_goal", "updated_at",
		}),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID)
}
