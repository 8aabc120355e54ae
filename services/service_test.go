package services

import (
	"context"
	"testing"

	"nutritracker/config"
	"nutritracker/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createFood(t *testing.T, db *gorm.DB, owner *uint, name string, calories float64, visible bool) *models.FoodItem {
	t.Helper()

	food := models.FoodItem{
		UserID:          owner,
		Source:          "custom",
		Name:            name,
		CaloriesPer100g: calories,
		IsVisible:       visible,
	}
	if owner == nil {
		food.Source = "seed"
	}
	require.NoError(t, db.Create(&food).Error)
	return &food
}

func createDayLog(t *testing.T, db *gorm.DB, userID uint, date string) *models.DayLog {
	t.Helper()

	log, err := NewDayLogService(db).GetOrCreate(context.Background(), userID, date)
	require.NoError(t, err)
	return log
}

func createMeal(t *testing.T, db *gorm.DB, userID, dayLogID uint, mealType string) *models.Meal {
	t.Helper()

	meal, err := NewMealService(db).Create(context.Background(), userID, dayLogID, mealType)
	require.NoError(t, err)
	return meal
}

func ptr(v float64) *float64 { return &v }
