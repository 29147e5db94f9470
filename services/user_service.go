package services

import (
	"errors"

	"backend/config"
	"backend/models"
)

type UserProfileInput struct {
	Email    string `json:"email" binding:"omitempty,email"`
	FullName string `json:"full_name"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	return map[string]interface{}{
		"id":        user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	}, nil
}

func UpdateUserProfile(userID uint, input UserProfileInput) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if input.Email != "" && input.Email != user.Email {
		var count int64
		config.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", input.Email, userID).
			Count(&count)
		if count > 0 {
			return ErrEmailTaken
		}
		user.Email = input.Email
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}

	return config.DB.Save(&user).Error
}
