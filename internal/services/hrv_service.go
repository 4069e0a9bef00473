package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

var (
	ErrHRVReadingNotFound = errors.New("hrv reading not found")
	ErrHRVSaveFailed      = errors.New("save hrv reading failed")
	ErrHRVLoadFailed      = errors.New("load hrv readings failed")
	ErrHRVDeleteFailed    = errors.New("delete hrv reading failed")
)

type HRVInput struct {
	RMSSDMs    float64 `validate:"gte=0,lte=500"`
	SDNNMs     float64 `validate:"gte=0,lte=500"`
	RestingHR  float64 `validate:"gt=0,lte=250"`
	MeasuredAt *time.Time
}

type HRVRepository interface {
	Upsert(reading *models.HRVReading) error
	Latest(userID uint) (*models.HRVReading, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.HRVReading, error)
	DeleteByUserAndDay(userID uint, day time.Time) (bool, error)
}

type HRVService struct {
	readings HRVRepository
	now      func() time.Time
}

func NewHRVService(readings HRVRepository) *HRVService {
	return &HRVService{readings: readings, now: time.Now}
}

func (service *HRVService) WithClock(now func() time.Time) *HRVService {
	if now != nil {
		service.now = now
	}
	return service
}

func NormalizeHRVInput(input HRVInput) (HRVInput, error) {
	if !isFinite(input.RMSSDMs) || !isFinite(input.SDNNMs) || !isFinite(input.RestingHR) {
		return input, &ValidationError{Fields: map[string]string{"hrv": "must be a finite number"}}
	}
	if err := validateInput(input); err != nil {
		return input, err
	}
	return input, nil
}

// Upsert records the reading for day; a repeated submission for the same day overwrites it.
func (service *HRVService) Upsert(userID uint, day time.Time, input HRVInput) (models.HRVReading, error) {
	normalized, err := NormalizeHRVInput(input)
	if err != nil {
		return models.HRVReading{}, err
	}

	measuredAt := service.now().UTC()
	if normalized.MeasuredAt != nil {
		measuredAt = normalized.MeasuredAt.UTC()
	}

	reading := models.HRVReading{
		UserID:     userID,
		Date:       civilKey(day),
		MeasuredAt: measuredAt,
		RMSSDMs:    normalized.RMSSDMs,
		SDNNMs:     normalized.SDNNMs,
		RestingHR:  normalized.RestingHR,
	}
	if err := service.readings.Upsert(&reading); err != nil {
		return models.HRVReading{}, fmt.Errorf("%w: %v", ErrHRVSaveFailed, err)
	}
	return reading, nil
}

func (service *HRVService) List(userID uint, from *time.Time, to *time.Time) ([]models.HRVReading, error) {
	fromStart, toEnd := dayBounds(from, to)
	readings, err := service.readings.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHRVLoadFailed, err)
	}
	return readings, nil
}

func (service *HRVService) Latest(userID uint) (*models.HRVReading, error) {
	return service.readings.Latest(userID)
}

func (service *HRVService) DeleteByDate(userID uint, day time.Time) error {
	deleted, err := service.readings.DeleteByUserAndDay(userID, civilKey(day))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHRVDeleteFailed, err)
	}
	if !deleted {
		return ErrHRVReadingNotFound
	}
	return nil
}
