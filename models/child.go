package models

import "gorm.io/gorm"

// Child belongs to exactly one parent (User). AgeMonths of 0 means the
// age was never supplied; analytics treat that as 12 months.
type Child struct {
	gorm.Model
	Name      string `gorm:"not null"`
	AgeMonths int
	Photo     string // public S3 URL
	ParentID  uint   `gorm:"index;not null"`

	GrowthLogs    []GrowthLog    `gorm:"foreignKey:ChildID"`
	NutritionLogs []NutritionLog `gorm:"foreignKey:ChildID"`
}
