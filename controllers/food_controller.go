package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"nutritracker/middlewares"
	"nutritracker/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{foods: foods}
}

func includeGlobal(c *gin.Context) bool {
	return !strings.EqualFold(c.DefaultQuery("includeGlobal", "true"), "false")
}

// GET /api/foods — user's custom items plus global ones.
func (ctl *FoodController) List(c *gin.Context) {
	foods, err := ctl.foods.List(c.Request.Context(), middlewares.UserID(c), includeGlobal(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GET /api/foods/search?q=apple
func (ctl *FoodController) Search(c *gin.Context) {
	foods, err := ctl.foods.Search(c.Request.Context(), middlewares.UserID(c), c.Query("q"), includeGlobal(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GET /api/foods/search-external?q=apple
//
// Fails soft: if the external API is down or unconfigured the client gets an
// empty list and local search keeps working.
func (ctl *FoodController) SearchExternal(c *gin.Context) {
	foods, err := ctl.foods.SearchExternal(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("external food search failed: %v", err)
		c.JSON(http.StatusOK, []services.ExternalFood{})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// POST /api/foods/import-external — persist an external result as a hidden
// owned row so it can be attached to meals.
func (ctl *FoodController) ImportExternal(c *gin.Context) {
	var input services.FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.foods.ImportExternal(c.Request.Context(), middlewares.UserID(c), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and calories_per_100g are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, food)
}

// GET /api/foods/:id
func (ctl *FoodController) Get(c *gin.Context) {
	foodID, ok := parseID(c, "id")
	if !ok {
		return
	}

	food, err := ctl.foods.Get(c.Request.Context(), middlewares.UserID(c), foodID)
	if err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, food)
}

// POST /api/foods — create a custom item.
func (ctl *FoodController) Create(c *gin.Context) {
	var input services.FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.foods.CreateCustom(c.Request.Context(), middlewares.UserID(c), input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and calories_per_100g are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, food)
}

// PUT /api/foods/:id — owner only.
func (ctl *FoodController) Update(c *gin.Context) {
	foodID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.FoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.foods.UpdateCustom(c.Request.Context(), middlewares.UserID(c), foodID, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and calories_per_100g are required"})
		case services.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found (or not editable)"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, food)
}

// DELETE /api/foods/:id — soft delete; the row stays for historical meals.
func (ctl *FoodController) Delete(c *gin.Context) {
	foodID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctl.foods.SoftDelete(c.Request.Context(), middlewares.UserID(c), foodID); err != nil {
		if services.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Food not found (or not deletable)"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food hidden"})
}
