package services

import (
	"context"

	"nutritracker/models"

	"gorm.io/gorm"
)

type AccountService struct{ db *gorm.DB }

func NewAccountService(db *gorm.DB) *AccountService { return &AccountService{db: db} }

// DeleteAccount permanently removes the user and everything hanging off the
// ownership chain, in one transaction: meal_food_items → meals → day_logs →
// owned foods → profile → user. Any failure rolls the whole unit back —
// partial deletion would leave orphaned rows.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mealIDs := tx.Model(&models.Meal{}).
			Select("meals.id").
			Joins("JOIN day_logs ON day_logs.id = meals.day_log_id").
			Where("day_logs.user_id = ?", userID)

		if err := tx.Where("meal_id IN (?)", mealIDs).
			Delete(&models.MealFoodItem{}).Error; err != nil {
			return err
		}

		dayLogIDs := tx.Model(&models.DayLog{}).
			Select("id").
			Where("user_id = ?", userID)

		if err := tx.Unscoped().Where("day_log_id IN (?)", dayLogIDs).
			Delete(&models.Meal{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).
			Delete(&models.DayLog{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).
			Delete(&models.FoodItem{}).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).
			Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
}
