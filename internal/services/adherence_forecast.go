package services

import (
	"math"

	"github.com/terraincognita07/steady/internal/models"
)

type AdherenceInput struct {
	Trend     []TrendPoint
	Streak    int
	Readiness ReadinessLabel
	HasHRV    bool
}

// ForecastAdherence scores the chance of completing the habit today:
//
//	p = sigmoid(bias + wMood*mood + wStreak*streak + wReadiness*readiness)
//
// where mood is the mean smoothed mood scaled to [0,1], streak is min(streak, cap)/cap and
// readiness is the label score. With no check-ins and no HRV reading the configured baseline
// is returned. Missing parts score as neutral 0.5.
func ForecastAdherence(input AdherenceInput, cfg AnalyticsConfig) float64 {
	baseline := clampFloat(cfg.BaselineProbability, 0, 1)
	if !isFinite(cfg.BaselineProbability) {
		baseline = DefaultBaselineProbability
	}

	meanMood, hasMood := MeanSmoothed(input.Trend)
	if !hasMood && !input.HasHRV {
		return baseline
	}

	moodFeature := 0.5
	streakFeature := 0.5
	if hasMood && isFinite(meanMood) {
		moodFeature = clampFloat((meanMood-models.MinMood)/(models.MaxMood-models.MinMood), 0, 1)

		streakCap := cfg.StreakCap
		if streakCap < 1 {
			streakCap = 1
		}
		streak := clampInt(input.Streak, 0, streakCap)
		streakFeature = float64(streak) / float64(streakCap)
	}

	readinessFeature := ReadinessScore(ReadinessUnknown)
	if input.HasHRV {
		readinessFeature = ReadinessScore(input.Readiness)
	}

	logit := finiteOrZero(cfg.ForecastBias) +
		finiteOrZero(cfg.Weights.Mood)*moodFeature +
		finiteOrZero(cfg.Weights.Streak)*streakFeature +
		finiteOrZero(cfg.Weights.Readiness)*readinessFeature

	probability := sigmoid(logit)
	if math.IsNaN(probability) {
		return baseline
	}
	return clampFloat(probability, 0, 1)
}

// CompletionPercent renders a probability as a percentage rounded to one decimal.
func CompletionPercent(probability float64) float64 {
	return math.Round(clampFloat(probability, 0, 1)*1000) / 10
}

// sigmoid is evaluated on the side that cannot overflow exp.
func sigmoid(value float64) float64 {
	if value >= 0 {
		return 1 / (1 + math.Exp(-value))
	}
	expValue := math.Exp(value)
	return expValue / (1 + expValue)
}

func finiteOrZero(value float64) float64 {
	if !isFinite(value) {
		return 0
	}
	return value
}
