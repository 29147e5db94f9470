package models

import (
	"time"

	"gorm.io/gorm"
)

// FoodItem is one entry of a meal's food list. Stored serialized inside
// NutritionLog.FoodItems rather than as its own table.
type FoodItem struct {
	Name               string   `json:"name"`
	Quantity           string   `json:"quantity"` // e.g. "1 cup", "2 slices"
	CaloriesPerServing *float64 `json:"calories_per_serving,omitempty"`
}

// NutritionLog is one meal log for a child. Append-only.
type NutritionLog struct {
	gorm.Model
	ChildID   uint      `gorm:"index;not null"`
	MealType  string    `gorm:"size:50;not null"` // breakfast|lunch|dinner|snack
	FoodItems string    `gorm:"type:text;not null"` // JSON array of FoodItem
	Calories  *float64
	ProteinG  *float64
	CarbsG    *float64
	FatG      *float64
	FiberG    *float64
	SodiumMg  *float64
	MealDate  time.Time `gorm:"index;not null"`
	Notes     string    `gorm:"size:500"`
}
