package services

import (
	"context"

	"nutritracker/models"
	"nutritracker/utils"

	"gorm.io/gorm"
)

// SummaryService rolls logged meal items up into day and week totals. The
// database only fetches the rows; all arithmetic happens in utils so the
// same scaling is used everywhere macros are computed.
type SummaryService struct{ db *gorm.DB }

func NewSummaryService(db *gorm.DB) *SummaryService { return &SummaryService{db: db} }

type DaySummary struct {
	TotalCalories float64            `json:"totalCalories"`
	Protein       float64            `json:"protein"`
	Carbs         float64            `json:"carbs"`
	Fat           float64            `json:"fat"`
	Meals         map[string]float64 `json:"meals"`
}

// loggedItem is one fetched meal-food row with its catalog macros and the
// date/meal it belongs to.
type loggedItem struct {
	LogDate       string
	MealType      string
	QuantityGrams int

	// Same explicit column names as models.FoodItem, or the scan would look
	// for calories_per100g and leave the macros zero.
	CaloriesPer100g float64  `gorm:"column:calories_per_100g"`
	ProteinPer100g  *float64 `gorm:"column:protein_per_100g"`
	CarbsPer100g    *float64 `gorm:"column:carbs_per_100g"`
	FatPer100g      *float64 `gorm:"column:fat_per_100g"`
}

func (it loggedItem) food() models.FoodItem {
	return models.FoodItem{
		CaloriesPer100g: it.CaloriesPer100g,
		ProteinPer100g:  it.ProteinPer100g,
		CarbsPer100g:    it.CarbsPer100g,
		FatPer100g:      it.FatPer100g,
	}
}

// Day returns the day's totals plus calories per meal type. Meal types with
// nothing logged are absent from the map.
func (s *SummaryService) Day(ctx context.Context, userID, dayLogID uint) (*DaySummary, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.DayLog{}).
		Where("id = ? AND user_id = ?", dayLogID, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotAllowed
	}

	var rows []loggedItem
	err := s.db.WithContext(ctx).Model(&models.MealFoodItem{}).
		Select(`meals.meal_type,
			meal_food_items.quantity_grams,
			food_items.calories_per_100g,
			food_items.protein_per_100g,
			food_items.carbs_per_100g,
			food_items.fat_per_100g`).
		Joins("JOIN meals ON meals.id = meal_food_items.meal_id").
		Joins("JOIN food_items ON food_items.id = meal_food_items.food_item_id").
		Where("meals.day_log_id = ? AND meals.deleted_at IS NULL", dayLogID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make([]utils.MealTypeItem, 0, len(rows))
	scaled := make([]utils.Macros, 0, len(rows))
	for _, r := range rows {
		m := utils.ScaleToQuantity(r.food(), r.QuantityGrams)
		scaled = append(scaled, m)
		byType = append(byType, utils.MealTypeItem{MealType: r.MealType, Macros: m})
	}

	totals := utils.Sum(scaled)
	return &DaySummary{
		TotalCalories: totals.Calories,
		Protein:       totals.Protein,
		Carbs:         totals.Carbs,
		Fat:           totals.Fat,
		Meals:         utils.CaloriesByMealType(byType),
	}, nil
}

// Week returns exactly 7 {log_date, calories} points for [start, start+6],
// ascending, zero-filled for days with no logs.
func (s *SummaryService) Week(ctx context.Context, userID uint, start string) ([]utils.DayPoint, error) {
	startDay, err := utils.ParseDate(start)
	if err != nil {
		return nil, ErrInvalidInput
	}
	end := startDay.AddDate(0, 0, 7).Format(utils.DateLayout)

	var rows []loggedItem
	err = s.db.WithContext(ctx).Model(&models.MealFoodItem{}).
		Select(`day_logs.log_date,
			meal_food_items.quantity_grams,
			food_items.calories_per_100g`).
		Joins("JOIN meals ON meals.id = meal_food_items.meal_id").
		Joins("JOIN day_logs ON day_logs.id = meals.day_log_id").
		Joins("JOIN food_items ON food_items.id = meal_food_items.food_item_id").
		Where("day_logs.user_id = ? AND day_logs.log_date >= ? AND day_logs.log_date < ?",
			userID, start, end).
		Where("meals.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, len(rows))
	for _, r := range rows {
		byDate[r.LogDate] += utils.ScaleToQuantity(r.food(), r.QuantityGrams).Calories
	}

	return utils.WeeklySeries(byDate, startDay), nil
}
