package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

const (
	CheckInSourceWeb  = "web"
	CheckInSourceAPI  = "api"
	CheckInSourceSeed = "seed"
)

var (
	ErrCheckInNotFound     = errors.New("check-in not found")
	ErrCheckInLoadFailed   = errors.New("load check-in failed")
	ErrCheckInCreateFailed = errors.New("create check-in failed")
	ErrCheckInUpdateFailed = errors.New("update check-in failed")
	ErrCheckInDeleteFailed = errors.New("delete check-in failed")
	ErrCheckInFutureDate   = errors.New("check-in date is in the future")
)

type CheckInRepository interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CheckIn, error)
	ListSince(userID uint, since time.Time) ([]models.CheckIn, error)
	FindByID(userID uint, id uint) (models.CheckIn, bool, error)
	FindByUserAndDay(userID uint, day time.Time) (models.CheckIn, bool, error)
	Create(entry *models.CheckIn) error
	Save(entry *models.CheckIn) error
	DeleteByID(userID uint, id uint) (bool, error)
}

type CheckInService struct {
	checkIns CheckInRepository
	now      func() time.Time
}

func NewCheckInService(checkIns CheckInRepository) *CheckInService {
	return &CheckInService{checkIns: checkIns, now: time.Now}
}

func (service *CheckInService) WithClock(now func() time.Time) *CheckInService {
	if now != nil {
		service.now = now
	}
	return service
}

// List returns check-ins between from and to (inclusive days, either optional), oldest first.
func (service *CheckInService) List(userID uint, from *time.Time, to *time.Time) ([]models.CheckIn, error) {
	fromStart, toEnd := dayBounds(from, to)
	return service.checkIns.ListByUserRange(userID, fromStart, toEnd)
}

func (service *CheckInService) ListSince(userID uint, since time.Time) ([]models.CheckIn, error) {
	return service.checkIns.ListSince(userID, civilKey(since))
}

func (service *CheckInService) Get(userID uint, id uint) (models.CheckIn, error) {
	entry, found, err := service.checkIns.FindByID(userID, id)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("%w: %v", ErrCheckInLoadFailed, err)
	}
	if !found {
		return models.CheckIn{}, ErrCheckInNotFound
	}
	return entry, nil
}

// Upsert writes the single check-in for day. An existing entry is replaced field by field and
// returned as a new value; callers never observe the previous struct being mutated.
func (service *CheckInService) Upsert(userID uint, day time.Time, today time.Time, input CheckInInput) (models.CheckIn, bool, error) {
	normalized, err := NormalizeCheckInInput(input)
	if err != nil {
		return models.CheckIn{}, false, err
	}

	dayKey := civilKey(day)
	if dayKey.After(civilKey(today)) {
		return models.CheckIn{}, false, ErrCheckInFutureDate
	}

	existing, found, err := service.checkIns.FindByUserAndDay(userID, dayKey)
	if err != nil {
		return models.CheckIn{}, false, fmt.Errorf("%w: %v", ErrCheckInLoadFailed, err)
	}

	if found {
		updated := applyCheckInInput(existing, normalized)
		updated.CheckedInAt = service.now().UTC()
		if err := service.checkIns.Save(&updated); err != nil {
			return models.CheckIn{}, false, fmt.Errorf("%w: %v", ErrCheckInUpdateFailed, err)
		}
		return updated, false, nil
	}

	entry := applyCheckInInput(models.CheckIn{
		UserID:      userID,
		Date:        dayKey,
		CheckedInAt: service.now().UTC(),
	}, normalized)
	if entry.Source == "" {
		entry.Source = CheckInSourceAPI
	}
	if err := service.checkIns.Create(&entry); err != nil {
		return models.CheckIn{}, false, fmt.Errorf("%w: %v", ErrCheckInCreateFailed, err)
	}
	return entry, true, nil
}

// Update replaces mood, note and tags. A blank status keeps the stored one.
func (service *CheckInService) Update(userID uint, id uint, input CheckInInput) (models.CheckIn, error) {
	keepStatus := strings.TrimSpace(input.Status) == ""
	normalized, err := NormalizeCheckInInput(input)
	if err != nil {
		return models.CheckIn{}, err
	}

	existing, err := service.Get(userID, id)
	if err != nil {
		return models.CheckIn{}, err
	}
	if keepStatus && existing.Status != "" {
		normalized.Status = existing.Status
	}

	updated := applyCheckInInput(existing, normalized)
	if err := service.checkIns.Save(&updated); err != nil {
		return models.CheckIn{}, fmt.Errorf("%w: %v", ErrCheckInUpdateFailed, err)
	}
	return updated, nil
}

func (service *CheckInService) Delete(userID uint, id uint) error {
	deleted, err := service.checkIns.DeleteByID(userID, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCheckInDeleteFailed, err)
	}
	if !deleted {
		return ErrCheckInNotFound
	}
	return nil
}

// CheckInToday returns today's check-in, creating a neutral ok entry when none exists yet.
// The created entry has mood 3 and counts toward the mood trend, risk days and the
// adherence forecast like any other check-in until it is edited.
func (service *CheckInService) CheckInToday(userID uint, today time.Time, source string) (models.CheckIn, bool, error) {
	dayKey := civilKey(today)
	existing, found, err := service.checkIns.FindByUserAndDay(userID, dayKey)
	if err != nil {
		return models.CheckIn{}, false, fmt.Errorf("%w: %v", ErrCheckInLoadFailed, err)
	}
	if found {
		return existing, false, nil
	}

	if source == "" {
		source = CheckInSourceWeb
	}
	entry := models.CheckIn{
		UserID:      userID,
		Date:        dayKey,
		CheckedInAt: service.now().UTC(),
		Status:      models.StatusOK,
		Mood:        3,
		Tags:        []string{},
		Source:      source,
	}
	if err := service.checkIns.Create(&entry); err != nil {
		return models.CheckIn{}, false, fmt.Errorf("%w: %v", ErrCheckInCreateFailed, err)
	}
	return entry, true, nil
}

func applyCheckInInput(entry models.CheckIn, input CheckInInput) models.CheckIn {
	entry.Mood = input.Mood
	entry.Status = input.Status
	entry.Note = input.Note
	entry.Tags = append([]string{}, input.Tags...)
	if input.Source != "" {
		entry.Source = input.Source
	}
	return entry
}
