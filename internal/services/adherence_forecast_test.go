package services

import (
	"math"
	"testing"
	"time"
)

func constantTrend(mood int, days int) []TrendPoint {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	moods := make([]int, days)
	for index := range moods {
		moods[index] = mood
	}
	return SmoothMoodTrend(moodSeries(start, moods...), DefaultSmoothingWindow)
}

func TestForecastAdherenceFallsBackToBaselineWithoutData(t *testing.T) {
	cfg := DefaultAnalyticsConfig()
	if got := ForecastAdherence(AdherenceInput{Readiness: ReadinessUnknown}, cfg); got != cfg.BaselineProbability {
		t.Fatalf("expected baseline %v, got %v", cfg.BaselineProbability, got)
	}

	cfg.BaselineProbability = 0.35
	if got := ForecastAdherence(AdherenceInput{}, cfg); got != 0.35 {
		t.Fatalf("expected configured baseline 0.35, got %v", got)
	}
}

func TestForecastAdherenceNeutralInputsScoreHalf(t *testing.T) {
	cfg := DefaultAnalyticsConfig()
	got := ForecastAdherence(AdherenceInput{
		Trend:     constantTrend(3, 7),
		Streak:    7,
		Readiness: ReadinessModerate,
		HasHRV:    true,
	}, cfg)
	if !almostEqual(got, 0.5, 1e-9) {
		t.Fatalf("expected neutral inputs to score 0.5, got %v", got)
	}
}

func TestForecastAdherenceIsMonotonicInSignals(t *testing.T) {
	cfg := DefaultAnalyticsConfig()
	low := ForecastAdherence(AdherenceInput{Trend: constantTrend(1, 7), Streak: 0, Readiness: ReadinessLow, HasHRV: true}, cfg)
	mid := ForecastAdherence(AdherenceInput{Trend: constantTrend(3, 7), Streak: 5, Readiness: ReadinessModerate, HasHRV: true}, cfg)
	high := ForecastAdherence(AdherenceInput{Trend: constantTrend(5, 7), Streak: 30, Readiness: ReadinessHigh, HasHRV: true}, cfg)

	if !(low < mid && mid < high) {
		t.Fatalf("expected low < mid < high, got %v %v %v", low, mid, high)
	}
	if want := 1 / (1 + math.Exp(2.25)); !almostEqual(low, want, 1e-9) {
		t.Fatalf("expected lowest signals to score %v, got %v", want, low)
	}
	if want := 1 / (1 + math.Exp(-2.25)); !almostEqual(high, want, 1e-9) {
		t.Fatalf("expected highest signals to score %v, got %v", want, high)
	}
}

func TestForecastAdherenceStaysWithinUnitInterval(t *testing.T) {
	extremes := []float64{-1e308, -1e6, -1, 0, 1, 1e6, 1e308}
	for _, weight := range extremes {
		for _, bias := range extremes {
			cfg := DefaultAnalyticsConfig()
			cfg.Weights = ForecastWeights{Mood: weight, Streak: weight, Readiness: -weight}
			cfg.ForecastBias = bias
			for _, streak := range []int{math.MinInt32, -1, 0, 14, math.MaxInt32} {
				got := ForecastAdherence(AdherenceInput{
					Trend:     constantTrend(5, 3),
					Streak:    streak,
					Readiness: ReadinessHigh,
					HasHRV:    true,
				}, cfg)
				if math.IsNaN(got) || got < 0 || got > 1 {
					t.Fatalf("weight=%g bias=%g streak=%d: probability %g outside [0,1]", weight, bias, streak, got)
				}
			}
		}
	}
}

func TestForecastAdherenceTreatsNonFiniteCoefficientsAsZero(t *testing.T) {
	cfg := DefaultAnalyticsConfig()
	cfg.Weights.Mood = math.Inf(1)
	cfg.ForecastBias = math.NaN()

	got := ForecastAdherence(AdherenceInput{Trend: constantTrend(4, 3), Streak: 3, HasHRV: false}, cfg)
	if math.IsNaN(got) || got < 0 || got > 1 {
		t.Fatalf("expected probability within [0,1], got %v", got)
	}
}

func TestForecastAdherenceWithHRVOnly(t *testing.T) {
	cfg := DefaultAnalyticsConfig()
	high := ForecastAdherence(AdherenceInput{Readiness: ReadinessHigh, HasHRV: true}, cfg)
	low := ForecastAdherence(AdherenceInput{Readiness: ReadinessLow, HasHRV: true}, cfg)
	if high <= 0.5 {
		t.Fatalf("expected high readiness above 0.5, got %v", high)
	}
	if low >= 0.5 {
		t.Fatalf("expected low readiness below 0.5, got %v", low)
	}
}

func TestCompletionPercent(t *testing.T) {
	cases := []struct {
		probability float64
		want        float64
	}{
		{probability: 0.5, want: 50},
		{probability: 0.90487, want: 90.5},
		{probability: 1.7, want: 100},
		{probability: -0.2, want: 0},
	}
	for _, testCase := range cases {
		if got := CompletionPercent(testCase.probability); got != testCase.want {
			t.Fatalf("CompletionPercent(%v) = %v, want %v", testCase.probability, got, testCase.want)
		}
	}
}

func TestSigmoidDoesNotOverflow(t *testing.T) {
	if got := sigmoid(1e308); got != 1 {
		t.Fatalf("expected sigmoid(+large) = 1, got %v", got)
	}
	if got := sigmoid(-1e308); got != 0 {
		t.Fatalf("expected sigmoid(-large) = 0, got %v", got)
	}
	if got := sigmoid(0); !almostEqual(got, 0.5, 1e-12) {
		t.Fatalf("expected sigmoid(0) = 0.5, got %v", got)
	}
}
