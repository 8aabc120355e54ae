package utils

import (
	"time"

	"nutritracker/models"
)

// Nutrition aggregation: per-100g scaling, totals, per-meal-type grouping
// and the weekly series. All functions are pure; they take already-fetched
// rows and return computed values.

// Macros are absolute nutrient values for some quantity of food.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DayPoint is one entry of the weekly series. LogDate stays a plain
// YYYY-MM-DD string so serialization can never shift it across a day
// boundary.
type DayPoint struct {
	LogDate  string  `json:"log_date"`
	Calories float64 `json:"calories"`
}

// ScaleToQuantity converts a food's per-100g macros to absolute values for
// a quantity in grams: value = quantity/100 * per100g, per macro.
// Nil macros count as zero here; the catalog layer keeps the nil visible so
// "unknown protein" is never presented as 0 g.
func ScaleToQuantity(food models.FoodItem, quantityGrams int) Macros {
	scale := float64(quantityGrams) / 100.0
	return Macros{
		Calories: scale * food.CaloriesPer100g,
		Protein:  scale * deref(food.ProteinPer100g),
		Carbs:    scale * deref(food.CarbsPer100g),
		Fat:      scale * deref(food.FatPer100g),
	}
}

// Sum reduces scaled items into a total. Plain addition, so the result does
// not depend on item order.
func Sum(items []Macros) Macros {
	var total Macros
	for _, it := range items {
		total.Calories += it.Calories
		total.Protein += it.Protein
		total.Carbs += it.Carbs
		total.Fat += it.Fat
	}
	return total
}

// MealTypeItem pairs a scaled item with the type of the meal it belongs to.
type MealTypeItem struct {
	MealType string
	Macros   Macros
}

// CaloriesByMealType sums calories per meal type. Meal types with no logged
// items are absent from the map, not zero — callers distinguish "no data"
// from "zero logged".
func CaloriesByMealType(items []MealTypeItem) map[string]float64 {
	out := make(map[string]float64)
	for _, it := range items {
		out[it.MealType] += it.Macros.Calories
	}
	return out
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// WeeklySeries produces exactly 7 points for [start, start+6] in ascending
// date order. Days missing from byDate become zero-calorie points, so chart
// consumers always get 7 entries. Date stepping is anchored to UTC.
func WeeklySeries(byDate map[string]float64, start time.Time) []DayPoint {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	series := make([]DayPoint, 0, 7)
	for i := 0; i < 7; i++ {
		key := day.AddDate(0, 0, i).Format(DateLayout)
		series = append(series, DayPoint{LogDate: key, Calories: byDate[key]})
	}
	return series
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
