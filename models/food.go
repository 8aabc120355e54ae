package models

import "gorm.io/gorm"

// FoodItem is a catalog entry with macros normalized to 100 grams.
//
// Ownership: UserID == nil means a global item visible to everyone;
// otherwise the item belongs to one user (custom or imported-external).
// Calories are required; the other macros are nullable — "unknown" must not
// read back as zero.
type FoodItem struct {
	gorm.Model
	UserID *uint  `gorm:"index" json:"user_id"`
	Source string `gorm:"default:custom" json:"source"` // custom | seed
	Name   string `gorm:"not null;index" json:"name"`

	// Explicit column names: the default naming strategy would drop the
	// underscore before the digit (calories_per100g) and break every raw
	// query against these columns.
	CaloriesPer100g float64  `gorm:"column:calories_per_100g;not null" json:"calories_per_100g"`
	ProteinPer100g  *float64 `gorm:"column:protein_per_100g" json:"protein_per_100g"`
	CarbsPer100g    *float64 `gorm:"column:carbs_per_100g" json:"carbs_per_100g"`
	FatPer100g      *float64 `gorm:"column:fat_per_100g" json:"fat_per_100g"`

	// Soft delete / external import: hidden items stay referenceable by the
	// owner so historical meal entries keep computing. No DB default here:
	// a default tag makes gorm skip the field on insert when it is false,
	// so hidden rows would come back visible. Every create sets it.
	IsVisible bool `json:"is_visible"`
}

// OwnedBy reports whether the item belongs to the given user.
func (f FoodItem) OwnedBy(userID uint) bool {
	return f.UserID != nil && *f.UserID == userID
}

// Global reports whether the item has no owner and is visible to everyone.
func (f FoodItem) Global() bool {
	return f.UserID == nil
}

// ListableBy reports whether the item may appear in the user's food list and
// search results: visible items that are global or owned.
func (f FoodItem) ListableBy(userID uint) bool {
	return f.IsVisible && (f.Global() || f.OwnedBy(userID))
}

// ReferenceableBy reports whether the user may attach the item to a meal.
// Hidden items remain referenceable by their owner (soft-deleted or imported
// rows) but never by anyone else.
func (f FoodItem) ReferenceableBy(userID uint) bool {
	if f.IsVisible {
		return f.Global() || f.OwnedBy(userID)
	}
	return f.OwnedBy(userID)
}
