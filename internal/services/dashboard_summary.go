package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

type DashboardCheckInReader interface {
	ListSince(userID uint, since time.Time) ([]models.CheckIn, error)
}

type DashboardHRVReader interface {
	Latest(userID uint) (*models.HRVReading, error)
}

// Clock supplies "today" to request handlers so that analytics never read the wall clock.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type DashboardSummary struct {
	Today             string             `json:"today"`
	Streak            int                `json:"streak"`
	Trend             []TrendPoint       `json:"trend"`
	RiskCount         int                `json:"risk_count"`
	RiskDays          []models.CheckIn   `json:"risk_days"`
	ReadinessLabel    ReadinessLabel     `json:"readiness_label"`
	ReadinessGuidance string             `json:"readiness_guidance"`
	CompletionProb    float64            `json:"completion_prob"`
	CompletionPercent float64            `json:"completion_percent"`
	LatestHRV         *models.HRVReading `json:"latest_hrv,omitempty"`
}

type DashboardService struct {
	checkIns DashboardCheckInReader
	hrv      DashboardHRVReader
	config   AnalyticsConfig
}

func NewDashboardService(checkIns DashboardCheckInReader, hrv DashboardHRVReader, config AnalyticsConfig) *DashboardService {
	return &DashboardService{
		checkIns: checkIns,
		hrv:      hrv,
		config:   config,
	}
}

func (service *DashboardService) Config() AnalyticsConfig {
	return service.config
}

// BuildSummary reads the user's recent check-ins and latest HRV reading and runs every
// analytics component over them. today is a calendar day; only its y/m/d is used.
// Missing data degrades to defaults; only read failures are returned.
// Only LookbackDays of check-ins are read, so the streak saturates at LookbackDays.
func (service *DashboardService) BuildSummary(userID uint, today time.Time) (DashboardSummary, error) {
	cfg := service.config
	todayKey := civilKey(today)
	since := todayKey.AddDate(0, 0, -(cfg.LookbackDays - 1))

	checkIns, err := service.checkIns.ListSince(userID, since)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("list check-ins: %w", err)
	}
	latest, err := service.hrv.Latest(userID)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("load latest hrv: %w", err)
	}

	return AssembleDashboardSummary(checkIns, latest, todayKey, cfg), nil
}

// AssembleDashboardSummary is the pure part of BuildSummary.
func AssembleDashboardSummary(checkIns []models.CheckIn, latest *models.HRVReading, today time.Time, cfg AnalyticsConfig) DashboardSummary {
	dates := make([]time.Time, 0, len(checkIns))
	for _, entry := range checkIns {
		dates = append(dates, entry.Date)
	}
	streak := CalculateStreak(dates, today)

	trend := SmoothMoodTrend(RecentMoodPoints(checkIns, today, cfg.TrendWindowDays), cfg.SmoothingWindow)
	risk := DetectRiskDays(TrailingCheckIns(checkIns, today, cfg.TrendWindowDays), cfg.RiskMoodThreshold)
	readiness := ClassifyReadiness(latest, today, cfg)

	probability := ForecastAdherence(AdherenceInput{
		Trend:     trend,
		Streak:    streak,
		Readiness: readiness.Label,
		HasHRV:    readiness.Label != ReadinessUnknown,
	}, cfg)

	summary := DashboardSummary{
		Today:             civilKey(today).Format("2006-01-02"),
		Streak:            streak,
		Trend:             trend,
		RiskCount:         risk.Count,
		RiskDays:          risk.Days,
		ReadinessLabel:    readiness.Label,
		ReadinessGuidance: readiness.Guidance,
		CompletionProb:    probability,
		CompletionPercent: CompletionPercent(probability),
	}
	if readiness.Label != ReadinessUnknown {
		summary.LatestHRV = latest
	}
	return summary
}
