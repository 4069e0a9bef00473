package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

type RiskReport struct {
	Count int              `json:"risk_count"`
	Days  []models.CheckIn `json:"risk_days"`
}

func IsRiskDay(entry models.CheckIn, moodThreshold int) bool {
	if entry.Status == models.StatusWarn || entry.Status == models.StatusBlock {
		return true
	}
	return clampInt(entry.Mood, models.MinMood, models.MaxMood) <= moodThreshold
}

// DetectRiskDays flags low-mood or warn/block check-ins. Days are returned most recent first;
// the input slice is left untouched.
func DetectRiskDays(checkIns []models.CheckIn, moodThreshold int) RiskReport {
	days := make([]models.CheckIn, 0)
	for _, entry := range checkIns {
		if IsRiskDay(entry, moodThreshold) {
			days = append(days, entry)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return RiskReport{Count: len(days), Days: days}
}

// TrailingCheckIns keeps check-ins within windowDays calendar days ending at today.
func TrailingCheckIns(checkIns []models.CheckIn, today time.Time, windowDays int) []models.CheckIn {
	filtered := make([]models.CheckIn, 0, len(checkIns))
	for _, entry := range checkIns {
		if withinTrailingWindow(entry.Date, today, windowDays) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
