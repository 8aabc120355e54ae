package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// NutritionAPIService queries the CalorieNinjas nutrition API for foods not
// in the local catalog. Called from the backend so the API key stays off the
// client. Results are normalized to per-100g and never cached in the visible
// catalog; importing one creates a hidden row (see FoodService).
type NutritionAPIService struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewNutritionAPIService() *NutritionAPIService {
	return &NutritionAPIService{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  os.Getenv("NUTRITION_API_KEY"),
		baseURL: "https://api.calorieninjas.com/v1",
	}
}

// ExternalFood mirrors the local catalog shape but is never persisted as-is.
type ExternalFood struct {
	Name            string  `json:"name"`
	Source          string  `json:"source"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	External        bool    `json:"external"`
}

const externalResultLimit = 15

// Search queries the external API. An unset key returns an empty list so
// the food UI works without the integration configured.
func (s *NutritionAPIService) Search(ctx context.Context, query string) ([]ExternalFood, error) {
	query = strings.TrimSpace(query)
	if query == "" || s.apiKey == "" {
		return []ExternalFood{}, nil
	}

	reqURL := fmt.Sprintf("%s/nutrition?query=%s", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nutrition api request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read nutrition api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutrition api error (%d): %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Items []struct {
			Name          string  `json:"name"`
			ServingSizeG  float64 `json:"serving_size_g"`
			Calories      float64 `json:"calories"`
			ProteinG      float64 `json:"protein_g"`
			CarbohydrateG float64 `json:"carbohydrates_total_g"`
			FatTotalG     float64 `json:"fat_total_g"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode nutrition api response: %w", err)
	}

	out := make([]ExternalFood, 0, len(payload.Items))
	for _, item := range payload.Items {
		if len(out) == externalResultLimit {
			break
		}
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}

		// Normalize whatever serving the API reported to 100 g.
		serving := item.ServingSizeG
		if serving <= 0 {
			serving = 100
		}
		scale := 100 / serving

		out = append(out, ExternalFood{
			Name:            name,
			Source:          "calorieninjas",
			CaloriesPer100g: item.Calories * scale,
			ProteinPer100g:  item.ProteinG * scale,
			CarbsPer100g:    item.CarbohydrateG * scale,
			FatPer100g:      item.FatTotalG * scale,
			External:        true,
		})
	}
	return out, nil
}
