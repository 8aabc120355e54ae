package services

import (
	"context"
	"strings"

	"nutritracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FoodService owns the catalog: listing, ranked search, custom items,
// soft deletion and external imports.
//
// Visibility rules (see models.FoodItem):
//   - list/search: visible AND (owned OR global)
//   - attach to meal: the above, or hidden-but-owned
//
// Deleting a custom item only flips is_visible; rows referenced by past
// meals must survive or historical macro computation breaks.
type FoodService struct {
	db       *gorm.DB
	external *NutritionAPIService
}

func NewFoodService(db *gorm.DB, external *NutritionAPIService) *FoodService {
	return &FoodService{db: db, external: external}
}

const (
	foodListLimit   = 200
	foodSearchLimit = 30
)

type FoodInput struct {
	Name            string   `json:"name"`
	CaloriesPer100g *float64 `json:"calories_per_100g"`
	ProteinPer100g  *float64 `json:"protein_per_100g"`
	CarbsPer100g    *float64 `json:"carbs_per_100g"`
	FatPer100g      *float64 `json:"fat_per_100g"`
}

func (in *FoodInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.CaloriesPer100g == nil {
		return ErrInvalidInput
	}
	return nil
}

// listable scopes a query to items the user may see in lists and search.
func listable(userID uint, includeGlobal bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeGlobal {
			return db.Where("is_visible = ? AND (user_id = ? OR user_id IS NULL)", true, userID)
		}
		return db.Where("is_visible = ? AND user_id = ?", true, userID)
	}
}

func (s *FoodService) List(ctx context.Context, userID uint, includeGlobal bool) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := s.db.WithContext(ctx).
		Scopes(listable(userID, includeGlobal)).
		Order("name ASC").
		Limit(foodListLimit).
		Find(&foods).Error
	return foods, err
}

// Search matches the query as a case-insensitive substring. Names starting
// with the query rank before mid-string matches, alphabetical within each
// group.
func (s *FoodService) Search(ctx context.Context, userID uint, query string, includeGlobal bool) ([]models.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.FoodItem{}, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	prefix := strings.ToLower(query) + "%"

	var foods []models.FoodItem
	err := s.db.WithContext(ctx).
		Scopes(listable(userID, includeGlobal)).
		Where("LOWER(name) LIKE ?", pattern).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, name ASC",
			Vars:               []interface{}{prefix},
			WithoutParentheses: true,
		}}).
		Limit(foodSearchLimit).
		Find(&foods).Error
	return foods, err
}

func (s *FoodService) Get(ctx context.Context, userID, foodID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_visible = ? AND (user_id = ? OR user_id IS NULL)", foodID, true, userID).
		First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) CreateCustom(ctx context.Context, userID uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	food := models.FoodItem{
		UserID:          &userID,
		Source:          "custom",
		Name:            in.Name,
		CaloriesPer100g: *in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatPer100g:      in.FatPer100g,
		IsVisible:       true,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// UpdateCustom edits an owned custom item. Edits retroactively change the
// computed macros of every historical meal entry referencing the food —
// there is no snapshotting of nutrition facts.
func (s *FoodService) UpdateCustom(ctx context.Context, userID, foodID uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	res := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ? AND user_id = ? AND source = ?", foodID, userID, "custom").
		Updates(map[string]interface{}{
			"name":              in.Name,
			"calories_per_100g": *in.CaloriesPer100g,
			"protein_per_100g":  in.ProteinPer100g,
			"carbs_per_100g":    in.CarbsPer100g,
			"fat_per_100g":      in.FatPer100g,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var food models.FoodItem
	if err := s.db.WithContext(ctx).First(&food, foodID).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// SoftDelete hides an owned custom item instead of removing the row.
func (s *FoodService) SoftDelete(ctx context.Context, userID, foodID uint) error {
	res := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("id = ? AND user_id = ? AND source = ?", foodID, userID, "custom").
		Update("is_visible", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchExternal queries the external nutrition API. Failures degrade to an
// empty result set so local search keeps working.
func (s *FoodService) SearchExternal(ctx context.Context, query string) ([]ExternalFood, error) {
	if s.external == nil {
		return []ExternalFood{}, nil
	}
	return s.external.Search(ctx, query)
}

// ImportExternal persists an external lookup result as a hidden row owned by
// the user, so it can be attached to meals without polluting the visible
// list. An existing hidden row with the same lowercased name is reused.
// Matching by name rather than an external identifier can collide when two
// different external foods share a name; kept as-is deliberately.
func (s *FoodService) ImportExternal(ctx context.Context, userID uint, in FoodInput) (*models.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var existing models.FoodItem
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND is_visible = ? AND LOWER(name) = LOWER(?)",
			userID, "custom", false, in.Name).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	food := models.FoodItem{
		UserID:          &userID,
		Source:          "custom",
		Name:            in.Name,
		CaloriesPer100g: *in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatPer100g:      in.FatPer100g,
		IsVisible:       false,
	}
	if err := s.db.WithContext(ctx).Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}
