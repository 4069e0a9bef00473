package db

import (
	"time"

	"github.com/terraincognita07/steady/internal/models"
	"gorm.io/gorm"
)

type CheckInRepository struct {
	database *gorm.DB
}

func NewCheckInRepository(database *gorm.DB) *CheckInRepository {
	return &CheckInRepository{database: database}
}

// ListSince returns check-ins dated on or after since, most recent first.
func (repo *CheckInRepository) ListSince(userID uint, since time.Time) ([]models.CheckIn, error) {
	checkIns := make([]models.CheckIn, 0)
	if err := repo.database.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC, id DESC").
		Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (repo *CheckInRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CheckIn, error) {
	query := repo.database.Model(&models.CheckIn{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	checkIns := make([]models.CheckIn, 0)
	if err := query.Order("date ASC, id ASC").Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (repo *CheckInRepository) FindByID(userID uint, id uint) (models.CheckIn, bool, error) {
	entry := models.CheckIn{}
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.CheckIn{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CheckIn{}, false, nil
	}
	return entry, true, nil
}

func (repo *CheckInRepository) FindByUserAndDay(userID uint, day time.Time) (models.CheckIn, bool, error) {
	entry := models.CheckIn{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Order("id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.CheckIn{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CheckIn{}, false, nil
	}
	return entry, true, nil
}

func (repo *CheckInRepository) Create(entry *models.CheckIn) error {
	return repo.database.Create(entry).Error
}

func (repo *CheckInRepository) Save(entry *models.CheckIn) error {
	return repo.database.Save(entry).Error
}

func (repo *CheckInRepository) DeleteByID(userID uint, id uint) (bool, error) {
	result := repo.database.Where("user_id = ? AND id = ?", userID, id).Delete(&models.CheckIn{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
