package services

import (
	"errors"
	"fmt"

	"backend/config"
	"backend/models"
	"backend/utils"
)

// ErrChildNotFound covers both a missing row and a child owned by a
// different parent, so responses never leak which one it was.
var ErrChildNotFound = errors.New("child not found or not accessible")

type ChildInput struct {
	Name      string `json:"name" binding:"required"`
	AgeMonths int    `json:"age_months" binding:"omitempty,gte=0,lte=240"`
	Photo     string `json:"photo"` // base64 data URL, uploaded to S3
}

type ChildUpdateInput struct {
	Name      string `json:"name"`
	AgeMonths *int   `json:"age_months" binding:"omitempty"`
	Photo     string `json:"photo"`
}

func CreateChild(parentID uint, input ChildInput) (*models.Child, error) {
	child := models.Child{
		Name:      input.Name,
		AgeMonths: input.AgeMonths,
		ParentID:  parentID,
	}

	if input.Photo != "" {
		url, err := utils.UploadBase64ImageToS3(input.Photo, fmt.Sprintf("child-%d", parentID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		child.Photo = url
	}

	if err := config.DB.Create(&child).Error; err != nil {
		return nil, err
	}
	return &child, nil
}

func ListChildren(parentID uint) ([]models.Child, error) {
	var children []models.Child
	err := config.DB.Where("parent_id = ?", parentID).Find(&children).Error
	return children, err
}

// VerifyChildParent gates every child-scoped operation: it loads the
// child only when it belongs to the given parent.
func VerifyChildParent(childID, parentID uint) (*models.Child, error) {
	var child models.Child
	err := config.DB.
		Where("id = ? AND parent_id = ?", childID, parentID).
		First(&child).Error
	if err != nil {
		return nil, ErrChildNotFound
	}
	return &child, nil
}

func UpdateChild(childID, parentID uint, input ChildUpdateInput) (*models.Child, error) {
	child, err := VerifyChildParent(childID, parentID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		child.Name = input.Name
	}
	if input.AgeMonths != nil {
		child.AgeMonths = *input.AgeMonths
	}
	if input.Photo != "" {
		url, err := utils.UploadBase64ImageToS3(input.Photo, fmt.Sprintf("child-%d", parentID))
		if err != nil {
			return nil, fmt.Errorf("failed to upload photo: %w", err)
		}
		child.Photo = url
	}

	if err := config.DB.Save(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}

func DeleteChild(childID, parentID uint) error {
	child, err := VerifyChildParent(childID, parentID)
	if err != nil {
		return err
	}

	// logs first, then the child row
	if err := config.DB.Where("child_id = ?", child.ID).Delete(&models.GrowthLog{}).Error; err != nil {
		return err
	}
	if err := config.DB.Where("child_id = ?", child.ID).Delete(&models.NutritionLog{}).Error; err != nil {
		return err
	}
	return config.DB.Delete(child).Error
}
