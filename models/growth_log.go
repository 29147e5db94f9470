package models

import (
	"time"

	"gorm.io/gorm"
)

// GrowthLog is one growth measurement for a child. Append-only: rows are
// never updated once created. All three metrics are optional so a visit
// that only recorded weight still produces a row.
type GrowthLog struct {
	gorm.Model
	ChildID             uint      `gorm:"index;not null"`
	HeightCm            *float64  // centimeters
	WeightKg            *float64  // kilograms
	HeadCircumferenceCm *float64  // centimeters
	MeasuredAt          time.Time `gorm:"index;not null"`
	Notes               string    `gorm:"size:500"`
}
