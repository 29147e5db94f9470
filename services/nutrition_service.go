package services

import (
	"encoding/json"
	"time"

	"backend/config"
	"backend/models"
)

type NutritionService struct {
	aggregator *NutritionAggregator
}

func NewNutritionService(aggregator *NutritionAggregator) *NutritionService {
	return &NutritionService{aggregator: aggregator}
}

// NutritionLogResponse is a NutritionLog with the food column parsed
// back into structured items.
type NutritionLogResponse struct {
	ID        uint              `json:"id"`
	MealType  string            `json:"meal_type"`
	FoodItems []models.FoodItem `json:"food_items"`
	Calories  *float64          `json:"calories"`
	ProteinG  *float64          `json:"protein_g"`
	CarbsG    *float64          `json:"carbs_g"`
	FatG      *float64          `json:"fat_g"`
	FiberG    *float64          `json:"fiber_g"`
	SodiumMg  *float64          `json:"sodium_mg"`
	MealDate  time.Time         `json:"meal_date"`
	Notes     string            `json:"notes,omitempty"`
	ChildID   uint              `json:"child_id"`
}

func (s *NutritionService) AddLog(
	childID uint,
	mealType string,
	foodItems []models.FoodItem,
	calories, protein, carbs, fat, fiber, sodium *float64,
	mealDate time.Time,
	notes string,
) (*NutritionLogResponse, error) {
	if mealDate.IsZero() {
		mealDate = time.Now().UTC()
	}

	itemsJSON, err := json.Marshal(foodItems)
	if err != nil {
		return nil, err
	}

	log := models.NutritionLog{
		ChildID:   childID,
		MealType:  mealType,
		FoodItems: string(itemsJSON),
		Calories:  calories,
		ProteinG:  protein,
		CarbsG:    carbs,
		FatG:      fat,
		FiberG:    fiber,
		SodiumMg:  sodium,
		MealDate:  mealDate,
		Notes:     notes,
	}
	if err := config.DB.Create(&log).Error; err != nil {
		return nil, err
	}

	resp := toLogResponse(log)
	return &resp, nil
}

func (s *NutritionService) History(childID uint) ([]NutritionLogResponse, error) {
	var logs []models.NutritionLog
	err := config.DB.
		Where("child_id = ?", childID).
		Order("meal_date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	out := make([]NutritionLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, toLogResponse(log))
	}
	return out, nil
}

// Summary aggregates the child's logs over the trailing window of days.
func (s *NutritionService) Summary(child *models.Child, days int) (NutritionSummary, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	var logs []models.NutritionLog
	err := config.DB.
		Where("child_id = ? AND meal_date >= ? AND meal_date <= ?", child.ID, start, end).
		Order("meal_date ASC").
		Find(&logs).Error
	if err != nil {
		return NutritionSummary{}, err
	}

	age := child.AgeMonths
	if age == 0 {
		age = defaultAgeMonths
	}
	return s.aggregator.Summarize(logs, days, age), nil
}

func toLogResponse(log models.NutritionLog) NutritionLogResponse {
	var items []models.FoodItem
	// a corrupt column yields an empty list, not an error
	_ = json.Unmarshal([]byte(log.FoodItems), &items)
	if items == nil {
		items = []models.FoodItem{}
	}

	return NutritionLogResponse{
		ID:        log.ID,
		MealType:  log.MealType,
		FoodItems: items,
		Calories:  log.Calories,
		ProteinG:  log.ProteinG,
		CarbsG:    log.CarbsG,
		FatG:      log.FatG,
		FiberG:    log.FiberG,
		SodiumMg:  log.SodiumMg,
		MealDate:  log.MealDate,
		Notes:     log.Notes,
		ChildID:   log.ChildID,
	}
}
