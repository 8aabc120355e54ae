package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutritracker/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	return SetupRouter(db)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestAuthRequired(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullFlow(t *testing.T) {
	r := setupRouter(t)

	// Register and grab the token.
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	decode(t, w, &reg)
	require.NotEmpty(t, reg.Token)
	token := reg.Token

	// Login works with the same credentials.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// No profile yet.
	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// Save a profile; the calorie goal is computed server-side.
	w = doJSON(t, r, http.MethodPut, "/api/profile", token, gin.H{
		"age": 30, "sex": "male", "height_cm": 180, "weight_kg": 80,
		"activity_level": "moderate", "goal": "maintain",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var profile struct {
		CalculatedCalorieGoal int     `json:"calculated_calorie_goal"`
		BMI                   float64 `json:"bmi"`
	}
	decode(t, w, &profile)
	assert.Equal(t, 2759, profile.CalculatedCalorieGoal)
	assert.InDelta(t, 24.7, profile.BMI, 0.001)

	// Day log is created on first access and reused after.
	w = doJSON(t, r, http.MethodGet, "/api/day-logs/2024-05-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var dayLog struct {
		ID      uint   `json:"ID"`
		LogDate string `json:"log_date"`
	}
	decode(t, w, &dayLog)
	assert.Equal(t, "2024-05-01", dayLog.LogDate)

	w = doJSON(t, r, http.MethodGet, "/api/day-logs/2024-05-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var again struct {
		ID uint `json:"ID"`
	}
	decode(t, w, &again)
	assert.Equal(t, dayLog.ID, again.ID)

	// Create a meal on the log.
	w = doJSON(t, r, http.MethodPost, "/api/meals", token, gin.H{
		"day_log_id": dayLog.ID, "meal_type": "breakfast",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var meal struct {
		ID uint `json:"ID"`
	}
	decode(t, w, &meal)

	// Create a custom food and attach 150 g of it.
	w = doJSON(t, r, http.MethodPost, "/api/foods", token, gin.H{
		"name": "Greek Yogurt", "calories_per_100g": 97, "protein_per_100g": 9,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var food struct {
		ID uint `json:"ID"`
	}
	decode(t, w, &food)

	w = doJSON(t, r, http.MethodPost, "/api/foods/add-to-meal", token, gin.H{
		"meal_id": meal.ID, "food_item_id": food.ID, "quantity_grams": 150,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Meal items report scaled macros.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/meals/%d/items", meal.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items struct {
		Items []struct {
			QuantityGrams int     `json:"quantity_grams"`
			Calories      float64 `json:"calories"`
		} `json:"items"`
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
	}
	decode(t, w, &items)
	require.Len(t, items.Items, 1)
	assert.InDelta(t, 145.5, items.Totals.Calories, 0.001)

	// Day summary agrees.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/summary/day/%d", dayLog.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var day struct {
		TotalCalories float64            `json:"totalCalories"`
		Meals         map[string]float64 `json:"meals"`
	}
	decode(t, w, &day)
	assert.InDelta(t, 145.5, day.TotalCalories, 0.001)
	assert.InDelta(t, 145.5, day.Meals["breakfast"], 0.001)

	// Week summary has the day in its series.
	w = doJSON(t, r, http.MethodGet, "/api/summary/week?start=2024-04-29", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var week []struct {
		LogDate  string  `json:"log_date"`
		Calories float64 `json:"calories"`
	}
	decode(t, w, &week)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-05-01", week[2].LogDate)
	assert.InDelta(t, 145.5, week[2].Calories, 0.001)

	// Delete the account; the token keeps parsing but the data is gone.
	w = doJSON(t, r, http.MethodDelete, "/api/account", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestUsersAreIsolated(t *testing.T) {
	r := setupRouter(t)

	register := func(name string) string {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": name, "email": name + "@example.com", "password": "pw123456",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var reg struct {
			Token string `json:"token"`
		}
		decode(t, w, &reg)
		return reg.Token
	}
	aliceToken := register("alice")
	bobToken := register("bob")

	w := doJSON(t, r, http.MethodGet, "/api/day-logs/2024-05-01", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dayLog struct {
		ID uint `json:"ID"`
	}
	decode(t, w, &dayLog)

	// Bob cannot read alice's log or her summary.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/day-logs/by-id/%d", dayLog.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/summary/day/%d", dayLog.ID), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
