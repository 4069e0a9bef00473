package db

import (
	"github.com/terraincognita07/steady/internal/models"
	"gorm.io/gorm"
)

type HabitAnchorRepository struct {
	database *gorm.DB
}

func NewHabitAnchorRepository(database *gorm.DB) *HabitAnchorRepository {
	return &HabitAnchorRepository{database: database}
}

func (repo *HabitAnchorRepository) ListByUser(userID uint) ([]models.HabitAnchor, error) {
	anchors := make([]models.HabitAnchor, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&anchors).Error; err != nil {
		return nil, err
	}
	return anchors, nil
}

func (repo *HabitAnchorRepository) FindByID(userID uint, id uint) (models.HabitAnchor, bool, error) {
	anchor := models.HabitAnchor{}
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Limit(1).Find(&anchor)
	if result.Error != nil {
		return models.HabitAnchor{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitAnchor{}, false, nil
	}
	return anchor, true, nil
}

func (repo *HabitAnchorRepository) Create(anchor *models.HabitAnchor) error {
	return repo.database.Create(anchor).Error
}

func (repo *HabitAnchorRepository) UpdateActive(userID uint, id uint, active bool) error {
	return repo.database.Model(&models.HabitAnchor{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("active", active).Error
}

func (repo *HabitAnchorRepository) DeleteByID(userID uint, id uint) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Delete(&models.HabitAnchor{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *HabitAnchorRepository) UpdateText(userID uint, id uint, name string, anchorText string) error {
	return repo.database.Model(&models.HabitAnchor{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]any{
			"name":        name,
			"anchor_text": anchorText,
		}).Error
}
