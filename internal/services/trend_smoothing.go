package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/steady/internal/models"
)

type MoodPoint struct {
	Date time.Time
	Mood int
}

type TrendPoint struct {
	Date     time.Time `json:"date"`
	Mood     int       `json:"mood"`
	Smoothed float64   `json:"smoothed"`
}

// SmoothMoodTrend applies a trailing moving average: point i averages moods[i-window+1..i],
// clipped at the start of the series. Output has the same length and order as points.
func SmoothMoodTrend(points []MoodPoint, window int) []TrendPoint {
	if window < 1 {
		window = 1
	}

	trend := make([]TrendPoint, len(points))
	sum := 0
	for index, point := range points {
		mood := clampInt(point.Mood, models.MinMood, models.MaxMood)
		sum += mood
		if index >= window {
			sum -= clampInt(points[index-window].Mood, models.MinMood, models.MaxMood)
		}
		span := window
		if index+1 < window {
			span = index + 1
		}
		trend[index] = TrendPoint{
			Date:     point.Date,
			Mood:     mood,
			Smoothed: float64(sum) / float64(span),
		}
	}
	return trend
}

// RecentMoodPoints returns the check-ins dated within the windowDays calendar days ending at
// today, oldest first.
func RecentMoodPoints(checkIns []models.CheckIn, today time.Time, windowDays int) []MoodPoint {
	points := make([]MoodPoint, 0, len(checkIns))
	for _, entry := range checkIns {
		if !withinTrailingWindow(entry.Date, today, windowDays) {
			continue
		}
		points = append(points, MoodPoint{Date: entry.Date, Mood: entry.Mood})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

func MeanSmoothed(trend []TrendPoint) (float64, bool) {
	if len(trend) == 0 {
		return 0, false
	}
	total := 0.0
	for _, point := range trend {
		total += point.Smoothed
	}
	return total / float64(len(trend)), true
}

func withinTrailingWindow(date time.Time, today time.Time, windowDays int) bool {
	age := daysBetween(date, today)
	return age >= 0 && age < windowDays
}
