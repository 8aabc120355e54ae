package services

import (
	"context"
	"testing"

	"nutritracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeleteAccountCascades(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	ctx := context.Background()

	profiles := NewProfileService(db)
	_, err := profiles.Upsert(ctx, alice.ID, ProfileInput{
		Age: 30, Sex: "male", HeightCm: 180, WeightKg: 80,
		ActivityLevel: "moderate", Goal: "maintain",
	})
	require.NoError(t, err)

	food := createFood(t, db, &alice.ID, "Alice Soup", 45, true)
	log := createDayLog(t, db, alice.ID, "2024-05-01")
	meal := createMeal(t, db, alice.ID, log.ID, "lunch")
	require.NoError(t, NewMealService(db).AddFood(ctx, alice.ID, meal.ID, food.ID, 300))

	require.NoError(t, NewAccountService(db).DeleteAccount(ctx, alice.ID))

	assertCount := func(model interface{}, want int64) {
		t.Helper()
		var n int64
		require.NoError(t, db.Unscoped().Model(model).Count(&n).Error)
		assert.Equal(t, want, n)
	}
	assertCount(&models.User{}, 0)
	assertCount(&models.Profile{}, 0)
	assertCount(&models.FoodItem{}, 0)
	assertCount(&models.DayLog{}, 0)
	assertCount(&models.Meal{}, 0)
	assertCount(&models.MealFoodItem{}, 0)
}

func TestDeleteAccountLeavesOthersAlone(t *testing.T) {
	db := setupTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ctx := context.Background()

	global := createFood(t, db, nil, "Global Rice", 130, true)
	createFood(t, db, &alice.ID, "Alice Soup", 45, true)

	bobLog := createDayLog(t, db, bob.ID, "2024-05-01")
	bobMeal := createMeal(t, db, bob.ID, bobLog.ID, "dinner")
	require.NoError(t, NewMealService(db).AddFood(ctx, bob.ID, bobMeal.ID, global.ID, 150))

	aliceLog := createDayLog(t, db, alice.ID, "2024-05-01")
	aliceMeal := createMeal(t, db, alice.ID, aliceLog.ID, "dinner")
	require.NoError(t, NewMealService(db).AddFood(ctx, alice.ID, aliceMeal.ID, global.ID, 100))

	require.NoError(t, NewAccountService(db).DeleteAccount(ctx, alice.ID))

	// Bob's chain and the global catalog survive.
	var bobUser models.User
	assert.NoError(t, db.First(&bobUser, bob.ID).Error)
	var globalFood models.FoodItem
	assert.NoError(t, db.First(&globalFood, global.ID).Error)

	var logs int64
	require.NoError(t, db.Model(&models.DayLog{}).Where("user_id = ?", bob.ID).Count(&logs).Error)
	assert.EqualValues(t, 1, logs)

	items, err := NewMealService(db).ListItems(ctx, bob.ID, bobMeal.ID)
	require.NoError(t, err)
	assert.Len(t, items.Items, 1)

	// Alice is fully gone.
	var gone models.User
	assert.ErrorIs(t, db.Unscoped().First(&gone, alice.ID).Error, gorm.ErrRecordNotFound)
}
