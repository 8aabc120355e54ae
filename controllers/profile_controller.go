package controllers

import (
	"errors"
	"net/http"

	"nutritracker/middlewares"
	"nutritracker/models"
	"nutritracker/services"
	"nutritracker/utils"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController(profiles *services.ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// profileResponse always carries the effective calorie goal (override or
// freshly calculated) plus BMI when height/weight allow it.
func profileResponse(p *models.Profile) gin.H {
	out := gin.H{
		"id":                      p.ID,
		"user_id":                 p.UserID,
		"age":                     p.Age,
		"sex":                     p.Sex,
		"height_cm":               p.HeightCm,
		"weight_kg":               p.WeightKg,
		"activity_level":          p.ActivityLevel,
		"goal":                    p.Goal,
		"calculated_calorie_goal": p.CalculatedCalorieGoal,
		"custom_calorie_goal":     p.CustomCalorieGoal,
		"calorie_goal":            p.EffectiveCalorieGoal(),
	}

	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		out["bmi"] = bmi
		out["bmi_category"] = utils.BMICategory(bmi)
	}

	return out
}

// GET /api/profile
func (ctl *ProfileController) Get(c *gin.Context) {
	profile, err := ctl.profiles.Get(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// POST /api/profile and PUT /api/profile both upsert; the calorie goal is
// recalculated on every save.
func (ctl *ProfileController) Save(c *gin.Context) {
	var input services.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := ctl.profiles.Upsert(c.Request.Context(), middlewares.UserID(c), input)
	if err != nil {
		if errors.Is(err, utils.ErrIncompleteProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid profile fields to calculate calorie goal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}
