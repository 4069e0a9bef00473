package services

import (
	"sort"
	"strings"

	"github.com/terraincognita07/steady/internal/models"
)

const (
	MaxCheckInNoteLength = 2000
	MaxCheckInTags       = 20
	maxTagLength         = 40
)

type CheckInInput struct {
	Mood   int      `validate:"min=1,max=5"`
	Status string   `validate:"oneof=ok warn block"`
	Note   string   `validate:"max=2000"`
	Tags   []string `validate:"max=20"`
	Source string
}

// NormalizeCheckInInput trims the note, lowercases and dedups tags, defaults the status to ok
// and then validates ranges.
func NormalizeCheckInInput(input CheckInInput) (CheckInInput, error) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.Status == "" {
		input.Status = models.StatusOK
	}
	input.Note = strings.TrimSpace(input.Note)
	input.Tags = NormalizeTags(input.Tags)
	input.Source = strings.TrimSpace(input.Source)

	if err := validateInput(input); err != nil {
		return input, err
	}
	return input, nil
}

// NormalizeTags splits comma lists, lowercases, dedups and sorts tags. Tags longer than
// maxTagLength runes are cut on a rune boundary.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			tag := strings.ToLower(strings.TrimSpace(part))
			if tag == "" {
				continue
			}
			if runes := []rune(tag); len(runes) > maxTagLength {
				tag = strings.TrimSpace(string(runes[:maxTagLength]))
			}
			if _, exists := seen[tag]; exists {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags
}
