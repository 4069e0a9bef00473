package services

import (
	"math/rand"
	"strings"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

const (
	PromptReasonFromAnchor      = "from_anchor"
	PromptReasonFallbackMorning = "fallback_morning"
)

// RandomSource is the slice of math/rand used for prompt variant assignment.
type RandomSource interface {
	Intn(n int) int
}

func NewSeededRandomSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed))
}

func AssignPromptVariant(source RandomSource) string {
	if source.Intn(2) == 0 {
		return models.PromptVariantA
	}
	return models.PromptVariantB
}

type ScheduledPrompt struct {
	NextFireAt time.Time `json:"next_fire_at"`
	Reason     string    `json:"reason"`
}

type anchorTimeRule struct {
	keywords []string
	hour     int
	minute   int
}

var anchorTimeRules = []anchorTimeRule{
	{keywords: []string{"wake", "morning", "breakfast", "brush my teeth"}, hour: 7, minute: 30},
	{keywords: []string{"lunch", "noon", "midday"}, hour: 12, minute: 0},
	{keywords: []string{"commute home", "after work", "dinner", "evening"}, hour: 18, minute: 30},
}

var soonAnchorKeywords = []string{"kettle", "microwave", "boil"}

const soonAnchorDelay = 5 * time.Minute

// ScheduleFromAnchor picks the next reminder time for an anchor phrase. Recognized routines map
// to a fixed time of day (tomorrow when already past), waiting anchors fire shortly after now,
// anything else falls back to 09:00 the next day. now's location is kept.
func ScheduleFromAnchor(anchorText string, now time.Time) ScheduledPrompt {
	lowered := strings.ToLower(strings.TrimSpace(anchorText))

	if lowered != "" {
		for _, rule := range anchorTimeRules {
			if !containsAny(lowered, rule.keywords) {
				continue
			}
			candidate := atClock(now, rule.hour, rule.minute)
			if !candidate.After(now) {
				candidate = candidate.AddDate(0, 0, 1)
			}
			return ScheduledPrompt{NextFireAt: candidate, Reason: PromptReasonFromAnchor}
		}

		if containsAny(lowered, soonAnchorKeywords) {
			soon := now.Add(soonAnchorDelay)
			return ScheduledPrompt{NextFireAt: soon.Truncate(time.Minute), Reason: PromptReasonFromAnchor}
		}
	}

	return ScheduledPrompt{
		NextFireAt: atClock(now, 9, 0).AddDate(0, 0, 1),
		Reason:     PromptReasonFallbackMorning,
	}
}

func atClock(day time.Time, hour int, minute int) time.Time {
	year, month, date := day.Date()
	return time.Date(year, month, date, hour, minute, 0, 0, day.Location())
}

func containsAny(value string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(value, needle) {
			return true
		}
	}
	return false
}
