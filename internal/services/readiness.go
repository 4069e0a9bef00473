package services

import (
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

type ReadinessLabel string

const (
	ReadinessHigh     ReadinessLabel = "High"
	ReadinessModerate ReadinessLabel = "Moderate"
	ReadinessLow      ReadinessLabel = "Low"
	ReadinessUnknown  ReadinessLabel = "Unknown"
)

var readinessGuidance = map[ReadinessLabel]string{
	ReadinessHigh:     "Recovery looks strong. A good day to stretch your habit a little further.",
	ReadinessModerate: "Recovery is steady. Keep your usual routine and stick to your anchor.",
	ReadinessLow:      "Recovery is low. Shrink the habit to its tiniest version and just show up.",
	ReadinessUnknown:  "No recent HRV reading. Log one to get tailored guidance.",
}

var readinessScores = map[ReadinessLabel]float64{
	ReadinessHigh:     1.0,
	ReadinessModerate: 0.5,
	ReadinessLow:      0.0,
	ReadinessUnknown:  0.5,
}

type Readiness struct {
	Label    ReadinessLabel `json:"label"`
	Guidance string         `json:"guidance"`
}

func newReadiness(label ReadinessLabel) Readiness {
	return Readiness{Label: label, Guidance: ReadinessGuidance(label)}
}

func ReadinessGuidance(label ReadinessLabel) string {
	if guidance, ok := readinessGuidance[label]; ok {
		return guidance
	}
	return readinessGuidance[ReadinessUnknown]
}

// ReadinessScore maps a label onto [0,1] for the adherence forecast.
func ReadinessScore(label ReadinessLabel) float64 {
	if score, ok := readinessScores[label]; ok {
		return score
	}
	return readinessScores[ReadinessUnknown]
}

// ClassifyReadiness labels the latest HRV reading. Low wins over High when both rules match.
// A missing reading, or one older than the HRV lookback window, yields Unknown.
// Negative or NaN rmssd counts as 0; a non-positive resting HR counts as missing, which
// rules out High and leaves Low to rmssd alone.
func ClassifyReadiness(reading *models.HRVReading, today time.Time, cfg AnalyticsConfig) Readiness {
	if reading == nil {
		return newReadiness(ReadinessUnknown)
	}
	lookback := cfg.HRVLookbackDays
	if lookback < 1 {
		lookback = 1
	}
	if !withinTrailingWindow(reading.Date, today, lookback) {
		return newReadiness(ReadinessUnknown)
	}

	rmssd := sanitizeNonNegative(reading.RMSSDMs)
	restingHR := reading.RestingHR
	hasRestingHR := isFinite(restingHR) && restingHR > 0

	if rmssd < cfg.HRVLowRMSSD || (hasRestingHR && restingHR > cfg.HRVHighRestingHR) {
		return newReadiness(ReadinessLow)
	}
	if rmssd > cfg.HRVHighRMSSD && hasRestingHR && restingHR < cfg.HRVHighRestingHR {
		return newReadiness(ReadinessHigh)
	}
	return newReadiness(ReadinessModerate)
}

func sanitizeNonNegative(value float64) float64 {
	if !isFinite(value) || value < 0 {
		return 0
	}
	return value
}
