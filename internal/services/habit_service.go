package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

var (
	ErrHabitAnchorNotFound   = errors.New("habit anchor not found")
	ErrHabitAnchorLoadFailed = errors.New("load habit anchors failed")
	ErrHabitAnchorSaveFailed = errors.New("save habit anchor failed")
)

type HabitAnchorInput struct {
	Name       string `validate:"required,max=120"`
	AnchorText string `validate:"max=255"`
}

type HabitAnchorRepository interface {
	ListByUser(userID uint) ([]models.HabitAnchor, error)
	FindByID(userID uint, id uint) (models.HabitAnchor, bool, error)
	Create(anchor *models.HabitAnchor) error
	UpdateActive(userID uint, id uint, active bool) error
	UpdateText(userID uint, id uint, name string, anchorText string) error
	DeleteByID(userID uint, id uint) (bool, error)
}

type HabitService struct {
	anchors HabitAnchorRepository

	randomMu sync.Mutex
	random   RandomSource
}

func NewHabitService(anchors HabitAnchorRepository, random RandomSource) *HabitService {
	if random == nil {
		random = NewSeededRandomSource(time.Now().UnixNano())
	}
	return &HabitService{anchors: anchors, random: random}
}

func NormalizeHabitAnchorInput(input HabitAnchorInput) (HabitAnchorInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.AnchorText = strings.TrimSpace(input.AnchorText)
	if err := validateInput(input); err != nil {
		return input, err
	}
	return input, nil
}

func (service *HabitService) Create(userID uint, input HabitAnchorInput) (models.HabitAnchor, error) {
	normalized, err := NormalizeHabitAnchorInput(input)
	if err != nil {
		return models.HabitAnchor{}, err
	}

	service.randomMu.Lock()
	variant := AssignPromptVariant(service.random)
	service.randomMu.Unlock()

	anchor := models.HabitAnchor{
		UserID:        userID,
		Name:          normalized.Name,
		AnchorText:    normalized.AnchorText,
		PromptVariant: variant,
		Active:        true,
	}
	if err := service.anchors.Create(&anchor); err != nil {
		return models.HabitAnchor{}, fmt.Errorf("%w: %v", ErrHabitAnchorSaveFailed, err)
	}
	return anchor, nil
}

func (service *HabitService) List(userID uint) ([]models.HabitAnchor, error) {
	anchors, err := service.anchors.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHabitAnchorLoadFailed, err)
	}
	return anchors, nil
}

func (service *HabitService) Get(userID uint, id uint) (models.HabitAnchor, error) {
	anchor, found, err := service.anchors.FindByID(userID, id)
	if err != nil {
		return models.HabitAnchor{}, fmt.Errorf("%w: %v", ErrHabitAnchorLoadFailed, err)
	}
	if !found {
		return models.HabitAnchor{}, ErrHabitAnchorNotFound
	}
	return anchor, nil
}

// Update edits the wording of an anchor; the prompt variant stays fixed once assigned.
func (service *HabitService) Update(userID uint, id uint, input HabitAnchorInput) (models.HabitAnchor, error) {
	normalized, err := NormalizeHabitAnchorInput(input)
	if err != nil {
		return models.HabitAnchor{}, err
	}
	anchor, err := service.Get(userID, id)
	if err != nil {
		return models.HabitAnchor{}, err
	}
	if err := service.anchors.UpdateText(userID, id, normalized.Name, normalized.AnchorText); err != nil {
		return models.HabitAnchor{}, fmt.Errorf("%w: %v", ErrHabitAnchorSaveFailed, err)
	}
	anchor.Name = normalized.Name
	anchor.AnchorText = normalized.AnchorText
	return anchor, nil
}

func (service *HabitService) ToggleActive(userID uint, id uint) (models.HabitAnchor, error) {
	anchor, err := service.Get(userID, id)
	if err != nil {
		return models.HabitAnchor{}, err
	}
	anchor.Active = !anchor.Active
	if err := service.anchors.UpdateActive(userID, id, anchor.Active); err != nil {
		return models.HabitAnchor{}, fmt.Errorf("%w: %v", ErrHabitAnchorSaveFailed, err)
	}
	return anchor, nil
}

func (service *HabitService) Delete(userID uint, id uint) error {
	deleted, err := service.anchors.DeleteByID(userID, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHabitAnchorSaveFailed, err)
	}
	if !deleted {
		return ErrHabitAnchorNotFound
	}
	return nil
}

func (service *HabitService) NextPrompt(userID uint, id uint, now time.Time) (ScheduledPrompt, error) {
	anchor, err := service.Get(userID, id)
	if err != nil {
		return ScheduledPrompt{}, err
	}
	return ScheduleFromAnchor(anchor.AnchorText, now), nil
}
