package services

import (
	"context"
	"testing"

	"nutritracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMealCreateOwnership(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	svc := NewMealService(db)

	meal, err := svc.Create(context.Background(), alice.ID, log.ID, "breakfast")
	require.NoError(t, err)
	assert.Equal(t, log.ID, meal.DayLogID)

	_, err = svc.Create(context.Background(), bob.ID, log.ID, "breakfast")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestAddFoodUpsertsQuantity(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "lunch")
	food := createFood(t, db, nil, "Rice", 130, true)
	svc := NewMealService(db)

	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 100))
	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 250))

	// Last write wins, exactly one association row.
	var rows []models.MealFoodItem
	require.NoError(t, db.Where("meal_id = ?", meal.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 250, rows[0].QuantityGrams)
}

func TestAddFoodClampsQuantity(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "lunch")
	food := createFood(t, db, nil, "Rice", 130, true)
	svc := NewMealService(db)

	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 0))

	var row models.MealFoodItem
	require.NoError(t, db.Where("meal_id = ?", meal.ID).First(&row).Error)
	assert.Equal(t, 1, row.QuantityGrams)
}

func TestAddFoodCatalogPolicy(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "dinner")
	svc := NewMealService(db)

	global := createFood(t, db, nil, "Oats", 380, true)
	ownHidden := createFood(t, db, &alice.ID, "Imported Bar", 450, false)
	bobsVisible := createFood(t, db, &bob.ID, "Bob Shake", 200, true)
	bobsHidden := createFood(t, db, &bob.ID, "Bob Secret", 200, false)

	assert.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, global.ID, 50))

	// Own hidden (soft-deleted or imported) foods stay attachable.
	assert.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, ownHidden.ID, 50))

	// Other users' foods are not referenceable, visible or not.
	err := svc.AddFood(context.Background(), alice.ID, meal.ID, bobsVisible.ID, 50)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = svc.AddFood(context.Background(), alice.ID, meal.ID, bobsHidden.ID, 50)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Meal ownership is checked before the catalog.
	err = svc.AddFood(context.Background(), bob.ID, meal.ID, global.ID, 50)
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestListItemsComputesMacros(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "lunch")
	svc := NewMealService(db)

	food := models.FoodItem{
		UserID:          &alice.ID,
		Source:          "custom",
		Name:            "Chicken",
		CaloriesPer100g: 250,
		ProteinPer100g:  ptr(27),
		IsVisible:       true,
	}
	require.NoError(t, db.Create(&food).Error)
	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 150))

	result, err := svc.ListItems(context.Background(), alice.ID, meal.ID)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	item := result.Items[0]
	assert.InDelta(t, 375.0, item.Calories, 1e-9) // 150/100 * 250
	assert.InDelta(t, 40.5, item.Protein, 1e-9)   // 150/100 * 27
	assert.Zero(t, item.Carbs)                    // unknown carbs aggregate as 0...
	assert.Nil(t, item.CarbsPer100g)              // ...but the catalog nil is preserved

	assert.InDelta(t, 375.0, result.Totals.Calories, 1e-9)
}

func TestListItemsRetroactiveEdit(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "lunch")
	mealSvc := NewMealService(db)
	foodSvc := NewFoodService(db, nil)

	cal := 100.0
	food, err := foodSvc.CreateCustom(context.Background(), alice.ID, FoodInput{
		Name: "Soup", CaloriesPer100g: &cal,
	})
	require.NoError(t, err)
	require.NoError(t, mealSvc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 200))

	// Editing the food changes the computed value of the logged entry.
	newCal := 150.0
	_, err = foodSvc.UpdateCustom(context.Background(), alice.ID, food.ID, FoodInput{
		Name: "Soup", CaloriesPer100g: &newCal,
	})
	require.NoError(t, err)

	result, err := mealSvc.ListItems(context.Background(), alice.ID, meal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 300.0, result.Totals.Calories, 1e-9)
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "snack")
	food := createFood(t, db, nil, "Apple", 52, true)
	svc := NewMealService(db)

	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 100))

	item, err := svc.UpdateQuantity(context.Background(), alice.ID, meal.ID, food.ID, 180)
	require.NoError(t, err)
	assert.Equal(t, 180, item.QuantityGrams)

	// Unknown pair → not found.
	_, err = svc.UpdateQuantity(context.Background(), alice.ID, meal.ID, food.ID+999, 50)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.RemoveItem(context.Background(), alice.ID, meal.ID, food.ID))
	err = svc.RemoveItem(context.Background(), alice.ID, meal.ID, food.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Removed pair can be re-added (the unique slot is free again).
	assert.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 90))
}

func TestDeleteMealCascades(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "dinner")
	food := createFood(t, db, nil, "Pasta", 160, true)
	svc := NewMealService(db)

	require.NoError(t, svc.AddFood(context.Background(), alice.ID, meal.ID, food.ID, 120))
	require.NoError(t, svc.Delete(context.Background(), alice.ID, meal.ID))

	var count int64
	require.NoError(t, db.Model(&models.MealFoodItem{}).Where("meal_id = ?", meal.ID).Count(&count).Error)
	assert.Zero(t, count)

	meals, err := svc.ListForDayLog(context.Background(), alice.ID, log.ID)
	require.NoError(t, err)
	assert.Empty(t, meals)
}
