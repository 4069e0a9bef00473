package db

import (
	"time"

	"github.com/terraincognita07/steady/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HRVRepository struct {
	database *gorm.DB
}

func NewHRVRepository(database *gorm.DB) *HRVRepository {
	return &HRVRepository{database: database}
}

// Upsert writes the reading keyed by (user_id, date); a second write for the same day
// replaces the metrics and keeps the original row id.
func (repo *HRVRepository) Upsert(reading *models.HRVReading) error {
	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"measured_at", "rmssd_ms", "sdnn_ms", "resting_hr", "updated_at"}),
	}).Create(reading).Error; err != nil {
		return err
	}

	stored := models.HRVReading{}
	if err := repo.database.
		Where("user_id = ? AND date = ?", reading.UserID, reading.Date).
		First(&stored).Error; err != nil {
		return err
	}
	*reading = stored
	return nil
}

// Latest returns the most recent reading by calendar day.
func (repo *HRVRepository) Latest(userID uint) (*models.HRVReading, error) {
	reading := models.HRVReading{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, measured_at DESC").
		Limit(1).
		Find(&reading)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (repo *HRVRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.HRVReading, error) {
	query := repo.database.Model(&models.HRVReading{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	readings := make([]models.HRVReading, 0)
	if err := query.Order("date ASC").Find(&readings).Error; err != nil {
		return nil, err
	}
	return readings, nil
}

func (repo *HRVRepository) DeleteByUserAndDay(userID uint, day time.Time) (bool, error) {
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Delete(&models.HRVReading{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
