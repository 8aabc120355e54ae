package controllers

import (
	"errors"
	"net/http"

	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

// respondMealErr maps the shared service errors. Ownership failures answer
// 403 without revealing whether the resource exists.
func respondMealErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /api/meals  { "day_log_id": 1, "meal_type": "breakfast" }
func (ctl *MealController) Create(c *gin.Context) {
	var body struct {
		DayLogID uint   `json:"day_log_id" binding:"required"`
		MealType string `json:"meal_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_log_id and meal_type are required"})
		return
	}

	meal, err := ctl.meals.Create(c.Request.Context(), middlewares.UserID(c), body.DayLogID, body.MealType)
	if err != nil {
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// GET /api/meals/by-day/:dayLogId
func (ctl *MealController) ListForDayLog(c *gin.Context) {
	dayLogID, ok := parseID(c, "dayLogId")
	if !ok {
		return
	}

	meals, err := ctl.meals.ListForDayLog(c.Request.Context(), middlewares.UserID(c), dayLogID)
	if err != nil {
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, meals)
}

// DELETE /api/meals/:mealId
func (ctl *MealController) Delete(c *gin.Context) {
	mealID, ok := parseID(c, "mealId")
	if !ok {
		return
	}

	if err := ctl.meals.Delete(c.Request.Context(), middlewares.UserID(c), mealID); err != nil {
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}

// GET /api/meals/:mealId/items — rows with computed macros plus totals.
func (ctl *MealController) ListItems(c *gin.Context) {
	mealID, ok := parseID(c, "mealId")
	if !ok {
		return
	}

	result, err := ctl.meals.ListItems(c.Request.Context(), middlewares.UserID(c), mealID)
	if err != nil {
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /api/foods/add-to-meal  { "meal_id": 1, "food_item_id": 2, "quantity_grams": 150 }
//
// Upserts on the (meal, food) pair: adding the same food twice updates the
// quantity instead of duplicating the row.
func (ctl *MealController) AddFood(c *gin.Context) {
	var body struct {
		MealID        uint `json:"meal_id" binding:"required"`
		FoodItemID    uint `json:"food_item_id" binding:"required"`
		QuantityGrams int  `json:"quantity_grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_id and food_item_id are required"})
		return
	}

	err := ctl.meals.AddFood(c.Request.Context(), middlewares.UserID(c),
		body.MealID, body.FoodItemID, body.QuantityGrams)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food added to meal"})
}

// PATCH /api/meals/:mealId/items/:foodItemId  { "quantity_grams": 200 }
func (ctl *MealController) UpdateQuantity(c *gin.Context) {
	mealID, ok := parseID(c, "mealId")
	if !ok {
		return
	}
	foodItemID, ok := parseID(c, "foodItemId")
	if !ok {
		return
	}

	var body struct {
		QuantityGrams int `json:"quantity_grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity_grams is required"})
		return
	}

	item, err := ctl.meals.UpdateQuantity(c.Request.Context(), middlewares.UserID(c),
		mealID, foodItemID, body.QuantityGrams)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DELETE /api/meals/:mealId/items/:foodItemId
func (ctl *MealController) RemoveItem(c *gin.Context) {
	mealID, ok := parseID(c, "mealId")
	if !ok {
		return
	}
	foodItemID, ok := parseID(c, "foodItemId")
	if !ok {
		return
	}

	err := ctl.meals.RemoveItem(c.Request.Context(), middlewares.UserID(c), mealID, foodItemID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// DELETE /api/meals/:mealId/items
func (ctl *MealController) ClearItems(c *gin.Context) {
	mealID, ok := parseID(c, "mealId")
	if !ok {
		return
	}

	if err := ctl.meals.ClearItems(c.Request.Context(), middlewares.UserID(c), mealID); err != nil {
		respondMealErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal cleared"})
}
