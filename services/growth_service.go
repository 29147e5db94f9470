package services

import (
	"time"

	"backend/config"
	"backend/models"
)

// defaultAgeMonths stands in when a child's age was never recorded.
const defaultAgeMonths = 12

type GrowthService struct {
	analyzer *GrowthAnalyzer
}

func NewGrowthService(analyzer *GrowthAnalyzer) *GrowthService {
	return &GrowthService{analyzer: analyzer}
}

func (s *GrowthService) AddLog(childID uint, height, weight, head *float64, measuredAt time.Time, notes string) (*models.GrowthLog, error) {
	if measuredAt.IsZero() {
		measuredAt = time.Now().UTC()
	}

	log := models.GrowthLog{
		ChildID:             childID,
		HeightCm:            height,
		WeightKg:            weight,
		HeadCircumferenceCm: head,
		MeasuredAt:          measuredAt,
		Notes:               notes,
	}
	if err := config.DB.Create(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *GrowthService) History(childID uint) ([]models.GrowthLog, error) {
	var logs []models.GrowthLog
	err := config.DB.
		Where("child_id = ?", childID).
		Order("measured_at DESC").
		Find(&logs).Error
	return logs, err
}

// Stats recomputes the growth report from the full history on every
// call; nothing is cached, so it can never be stale.
func (s *GrowthService) Stats(child *models.Child) (GrowthStats, error) {
	var logs []models.GrowthLog
	err := config.DB.
		Where("child_id = ?", child.ID).
		Order("measured_at ASC").
		Find(&logs).Error
	if err != nil {
		return GrowthStats{}, err
	}

	age := child.AgeMonths
	if age == 0 {
		age = defaultAgeMonths
	}
	return s.analyzer.Analyze(logs, age), nil
}
