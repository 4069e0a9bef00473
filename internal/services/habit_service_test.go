package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

type stubHabitAnchorRepository struct {
	anchors []models.HabitAnchor
	nextID  uint
}

func (stub *stubHabitAnchorRepository) ListByUser(userID uint) ([]models.HabitAnchor, error) {
	result := make([]models.HabitAnchor, 0)
	for _, anchor := range stub.anchors {
		if anchor.UserID == userID {
			result = append(result, anchor)
		}
	}
	return result, nil
}

func (stub *stubHabitAnchorRepository) FindByID(userID uint, id uint) (models.HabitAnchor, bool, error) {
	for _, anchor := range stub.anchors {
		if anchor.UserID == userID && anchor.ID == id {
			return anchor, true, nil
		}
	}
	return models.HabitAnchor{}, false, nil
}

func (stub *stubHabitAnchorRepository) Create(anchor *models.HabitAnchor) error {
	stub.nextID++
	anchor.ID = stub.nextID
	stub.anchors = append(stub.anchors, *anchor)
	return nil
}

func (stub *stubHabitAnchorRepository) UpdateActive(userID uint, id uint, active bool) error {
	for index := range stub.anchors {
		if stub.anchors[index].UserID == userID && stub.anchors[index].ID == id {
			stub.anchors[index].Active = active
		}
	}
	return nil
}

func (stub *stubHabitAnchorRepository) UpdateText(userID uint, id uint, name string, anchorText string) error {
	for index := range stub.anchors {
		if stub.anchors[index].UserID == userID && stub.anchors[index].ID == id {
			stub.anchors[index].Name = name
			stub.anchors[index].AnchorText = anchorText
		}
	}
	return nil
}

func (stub *stubHabitAnchorRepository) DeleteByID(userID uint, id uint) (bool, error) {
	for index, anchor := range stub.anchors {
		if anchor.UserID == userID && anchor.ID == id {
			stub.anchors = append(stub.anchors[:index], stub.anchors[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestHabitServiceCreateAssignsVariantFromRandomSource(t *testing.T) {
	repo := &stubHabitAnchorRepository{}
	service := NewHabitService(repo, &fixedRandomSource{values: []int{1, 0}})

	first, err := service.Create(1, HabitAnchorInput{Name: " Stretch ", AnchorText: " after morning coffee "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.PromptVariant != models.PromptVariantB || !first.Active {
		t.Fatalf("unexpected anchor %#v", first)
	}
	if first.Name != "Stretch" || first.AnchorText != "after morning coffee" {
		t.Fatalf("expected trimmed fields, got %#v", first)
	}

	second, err := service.Create(1, HabitAnchorInput{Name: "Floss"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.PromptVariant != models.PromptVariantA {
		t.Fatalf("expected variant A, got %s", second.PromptVariant)
	}
}

func TestHabitServiceCreateRequiresName(t *testing.T) {
	service := NewHabitService(&stubHabitAnchorRepository{}, NewSeededRandomSource(1))
	if _, err := service.Create(1, HabitAnchorInput{Name: "   "}); !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHabitServiceToggleUpdateDeleteAndNextPrompt(t *testing.T) {
	repo := &stubHabitAnchorRepository{}
	service := NewHabitService(repo, NewSeededRandomSource(7))

	anchor, err := service.Create(1, HabitAnchorInput{Name: "Read", AnchorText: "after dinner"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := service.ToggleActive(1, anchor.ID)
	if err != nil || toggled.Active {
		t.Fatalf("expected inactive anchor, got %#v err=%v", toggled, err)
	}
	if _, err := service.ToggleActive(2, anchor.ID); !errors.Is(err, ErrHabitAnchorNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	updated, err := service.Update(1, anchor.ID, HabitAnchorInput{Name: "Read 2 pages", AnchorText: "when the kettle is on"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PromptVariant != anchor.PromptVariant || updated.Name != "Read 2 pages" {
		t.Fatalf("unexpected update %#v", updated)
	}

	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	prompt, err := service.NextPrompt(1, anchor.ID, now)
	if err != nil {
		t.Fatalf("next prompt: %v", err)
	}
	if !prompt.NextFireAt.Equal(now.Add(5*time.Minute)) || prompt.Reason != PromptReasonFromAnchor {
		t.Fatalf("unexpected prompt %#v", prompt)
	}

	if err := service.Delete(1, anchor.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := service.Delete(1, anchor.ID); !errors.Is(err, ErrHabitAnchorNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
