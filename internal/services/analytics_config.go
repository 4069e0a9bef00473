package services

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultSmoothingWindow         = 3
	DefaultRiskMoodThreshold       = 2
	DefaultHRVHighRMSSD            = 60.0
	DefaultHRVLowRMSSD             = 30.0
	DefaultHRVHighRestingHR        = 75.0
	DefaultForecastWeightMood      = 2.0
	DefaultForecastWeightStreak    = 1.5
	DefaultForecastWeightReadiness = 1.0
	DefaultBaselineProbability     = 0.5
)

type ForecastWeights struct {
	Mood      float64
	Streak    float64
	Readiness float64
}

// AnalyticsConfig holds the tunables shared by the dashboard components.
type AnalyticsConfig struct {
	SmoothingWindow     int
	RiskMoodThreshold   int
	HRVHighRMSSD        float64
	HRVLowRMSSD         float64
	HRVHighRestingHR    float64
	Weights             ForecastWeights
	ForecastBias        float64
	BaselineProbability float64
	StreakCap           int
	LookbackDays        int
	TrendWindowDays     int
	HRVLookbackDays     int
}

var ErrInvalidAnalyticsConfig = errors.New("invalid analytics config")

func DefaultAnalyticsConfig() AnalyticsConfig {
	weights := ForecastWeights{
		Mood:      DefaultForecastWeightMood,
		Streak:    DefaultForecastWeightStreak,
		Readiness: DefaultForecastWeightReadiness,
	}
	return AnalyticsConfig{
		SmoothingWindow:     DefaultSmoothingWindow,
		RiskMoodThreshold:   DefaultRiskMoodThreshold,
		HRVHighRMSSD:        DefaultHRVHighRMSSD,
		HRVLowRMSSD:         DefaultHRVLowRMSSD,
		HRVHighRestingHR:    DefaultHRVHighRestingHR,
		Weights:             weights,
		ForecastBias:        NeutralForecastBias(weights),
		BaselineProbability: DefaultBaselineProbability,
		StreakCap:           14,
		LookbackDays:        30,
		TrendWindowDays:     7,
		HRVLookbackDays:     7,
	}
}

// NeutralForecastBias centers the logistic curve so that all-neutral inputs
// (every normalized feature at 0.5) score exactly 0.5.
func NeutralForecastBias(weights ForecastWeights) float64 {
	return -0.5 * (weights.Mood + weights.Streak + weights.Readiness)
}

func (cfg AnalyticsConfig) Validate() error {
	switch {
	case cfg.SmoothingWindow < 1:
		return fmt.Errorf("%w: smoothing window must be >= 1", ErrInvalidAnalyticsConfig)
	case cfg.RiskMoodThreshold < 0:
		return fmt.Errorf("%w: risk mood threshold must be >= 0", ErrInvalidAnalyticsConfig)
	case !isFinite(cfg.HRVHighRMSSD) || !isFinite(cfg.HRVLowRMSSD) || !isFinite(cfg.HRVHighRestingHR):
		return fmt.Errorf("%w: hrv thresholds must be finite", ErrInvalidAnalyticsConfig)
	case cfg.HRVLowRMSSD > cfg.HRVHighRMSSD:
		return fmt.Errorf("%w: low rmssd threshold above high threshold", ErrInvalidAnalyticsConfig)
	case cfg.HRVHighRestingHR <= 0:
		return fmt.Errorf("%w: resting hr threshold must be positive", ErrInvalidAnalyticsConfig)
	case !isFinite(cfg.Weights.Mood) || !isFinite(cfg.Weights.Streak) || !isFinite(cfg.Weights.Readiness) || !isFinite(cfg.ForecastBias):
		return fmt.Errorf("%w: forecast coefficients must be finite", ErrInvalidAnalyticsConfig)
	case !isFinite(cfg.BaselineProbability) || cfg.BaselineProbability < 0 || cfg.BaselineProbability > 1:
		return fmt.Errorf("%w: baseline probability must be within [0,1]", ErrInvalidAnalyticsConfig)
	case cfg.StreakCap < 1 || cfg.LookbackDays < 1 || cfg.TrendWindowDays < 1 || cfg.HRVLookbackDays < 1:
		return fmt.Errorf("%w: day windows must be positive", ErrInvalidAnalyticsConfig)
	}
	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func clampFloat(value float64, low float64, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
