// services/meal_service.go
package services

import (
	"context"
	"errors"

	"nutritracker/models"
	"nutritracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// MealItemView is a meal-food row with its macros computed from the current
// catalog values. The per-100g fields stay pointers so an unknown macro is
// still distinguishable from zero; the computed fields coerce nil to 0.
type MealItemView struct {
	ID            uint   `json:"id"`
	MealID        uint   `json:"meal_id"`
	FoodItemID    uint   `json:"food_item_id"`
	QuantityGrams int    `json:"quantity_grams"`
	Name          string `json:"name"`

	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  *float64 `json:"protein_per_100g"`
	CarbsPer100g    *float64 `json:"carbs_per_100g"`
	FatPer100g      *float64 `json:"fat_per_100g"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MealItemsResult struct {
	Items  []MealItemView `json:"items"`
	Totals utils.Macros   `json:"totals"`
}

func (s *MealService) Create(ctx context.Context, userID, dayLogID uint, mealType string) (*models.Meal, error) {
	if mealType == "" {
		return nil, ErrInvalidInput
	}

	if err := s.assertDayLogOwned(ctx, userID, dayLogID); err != nil {
		return nil, err
	}

	meal := models.Meal{DayLogID: dayLogID, MealType: mealType}
	if err := s.db.WithContext(ctx).Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) ListForDayLog(ctx context.Context, userID, dayLogID uint) ([]models.Meal, error) {
	if err := s.assertDayLogOwned(ctx, userID, dayLogID); err != nil {
		return nil, err
	}

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("day_log_id = ?", dayLogID).
		Order("id ASC").
		Find(&meals).Error
	return meals, err
}

// Delete removes a meal and its food associations in one transaction.
func (s *MealService) Delete(ctx context.Context, userID, mealID uint) error {
	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", mealID).Delete(&models.MealFoodItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Meal{}, mealID).Error
	})
}

// AddFood attaches a food to a meal, or updates the quantity when the
// (meal, food) pair already exists. The upsert is a single conditional
// write on the natural key, so rapid quantity changes never race into
// duplicate rows. Quantities below 1 gram are clamped to 1.
func (s *MealService) AddFood(ctx context.Context, userID, mealID, foodItemID uint, quantityGrams int) error {
	if quantityGrams < 1 {
		quantityGrams = 1
	}

	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return err
	}

	// Food must be accessible to the user. Visible: global or owned.
	// Hidden: owned only (keeps history intact and allows external imports).
	var count int64
	err := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ?", foodItemID).
		Where(
			s.db.Where("is_visible = ? AND (user_id = ? OR user_id IS NULL)", true, userID).
				Or("is_visible = ? AND user_id = ?", false, userID),
		).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	item := models.MealFoodItem{
		MealID:        mealID,
		FoodItemID:    foodItemID,
		QuantityGrams: quantityGrams,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meal_id"}, {Name: "food_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity_grams", "updated_at"}),
	}).Create(&item).Error
}

func (s *MealService) UpdateQuantity(ctx context.Context, userID, mealID, foodItemID uint, quantityGrams int) (*models.MealFoodItem, error) {
	if quantityGrams < 1 {
		quantityGrams = 1
	}

	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.MealFoodItem{}).
		Where("meal_id = ? AND food_item_id = ?", mealID, foodItemID).
		Update("quantity_grams", quantityGrams)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var item models.MealFoodItem
	err := s.db.WithContext(ctx).
		Where("meal_id = ? AND food_item_id = ?", mealID, foodItemID).
		First(&item).Error
	return &item, err
}

func (s *MealService) RemoveItem(ctx context.Context, userID, mealID, foodItemID uint) error {
	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("meal_id = ? AND food_item_id = ?", mealID, foodItemID).
		Delete(&models.MealFoodItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *MealService) ClearItems(ctx context.Context, userID, mealID uint) error {
	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("meal_id = ?", mealID).
		Delete(&models.MealFoodItem{}).Error
}

// ListItems returns the meal's rows with computed macros plus a totals
// object for the meal.
func (s *MealService) ListItems(ctx context.Context, userID, mealID uint) (*MealItemsResult, error) {
	if err := s.assertMealOwned(ctx, userID, mealID); err != nil {
		return nil, err
	}

	var rows []models.MealFoodItem
	err := s.db.WithContext(ctx).
		Preload("FoodItem").
		Where("meal_id = ?", mealID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := &MealItemsResult{Items: make([]MealItemView, 0, len(rows))}
	scaled := make([]utils.Macros, 0, len(rows))
	for _, r := range rows {
		m := utils.ScaleToQuantity(r.FoodItem, r.QuantityGrams)
		scaled = append(scaled, m)
		result.Items = append(result.Items, MealItemView{
			ID:              r.ID,
			MealID:          r.MealID,
			FoodItemID:      r.FoodItemID,
			QuantityGrams:   r.QuantityGrams,
			Name:            r.FoodItem.Name,
			CaloriesPer100g: r.FoodItem.CaloriesPer100g,
			ProteinPer100g:  r.FoodItem.ProteinPer100g,
			CarbsPer100g:    r.FoodItem.CarbsPer100g,
			FatPer100g:      r.FoodItem.FatPer100g,
			Calories:        m.Calories,
			Protein:         m.Protein,
			Carbs:           m.Carbs,
			Fat:             m.Fat,
		})
	}
	result.Totals = utils.Sum(scaled)
	return result, nil
}

func (s *MealService) assertDayLogOwned(ctx context.Context, userID, dayLogID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.DayLog{}).
		Where("id = ? AND user_id = ?", dayLogID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotAllowed
	}
	return nil
}

func (s *MealService) assertMealOwned(ctx context.Context, userID, mealID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Meal{}).
		Joins("JOIN day_logs ON day_logs.id = meals.day_log_id").
		Where("meals.id = ? AND day_logs.user_id = ?", mealID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotAllowed
	}
	return nil
}

// IsNotFound folds the two "resource unavailable" cases controllers care
// about into one check.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
