package models

import (
	"time"

	"gorm.io/gorm"
)

// One Meal (breakfast/lunch/…) inside a day log. MealType is free-form in
// practice; the UI sends breakfast|lunch|dinner|snack.
type Meal struct {
	gorm.Model
	DayLogID uint   `gorm:"index;not null" json:"day_log_id"`
	MealType string `gorm:"not null" json:"meal_type"`

	Items []MealFoodItem `json:"items,omitempty"`
}

// MealFoodItem links a food to a meal with a quantity in grams.
//
// (meal_id, food_item_id) is the natural key: re-adding the same food to the
// same meal upserts the quantity instead of inserting a second row. No
// nutrition snapshot is stored — macros are always computed from the current
// catalog row, so editing a food retroactively changes historical entries.
// No DeletedAt here: removals must be hard deletes, otherwise a soft-deleted
// row would still occupy the unique (meal_id, food_item_id) slot and block
// re-adding the food.
type MealFoodItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MealID        uint `gorm:"uniqueIndex:idx_meal_food;not null" json:"meal_id"`
	FoodItemID    uint `gorm:"uniqueIndex:idx_meal_food;not null" json:"food_item_id"`
	QuantityGrams int  `gorm:"not null" json:"quantity_grams"`

	FoodItem FoodItem `json:"food_item,omitempty"`
}
