package services

import "time"

// CalculateStreak counts consecutive calendar days with a check-in, walking back from today.
// A streak is still active when the most recent check-in was yesterday. Dates after today
// are ignored and duplicates count once. Input order does not matter.
func CalculateStreak(dates []time.Time, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	todayKey := civilKey(today)
	present := make(map[time.Time]struct{}, len(dates))
	for _, date := range dates {
		key := civilKey(date)
		if key.After(todayKey) {
			continue
		}
		present[key] = struct{}{}
	}

	cursor := todayKey
	if _, ok := present[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := present[cursor]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := present[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}
