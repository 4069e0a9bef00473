package services

import "time"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// CivilDay returns the calendar day of value as observed in location, stored as UTC midnight.
// Persisted Date columns always hold this form.
func CivilDay(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseCivilDay parses YYYY-MM-DD into the stored UTC-midnight form.
func ParseCivilDay(raw string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}

func daysBetween(from time.Time, to time.Time) int {
	fromDay := civilKey(from)
	toDay := civilKey(to)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// civilKey drops the clock and zone, keeping only y/m/d.
func civilKey(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dayBounds turns inclusive optional days into a half-open [from, to+1) query range.
func dayBounds(from *time.Time, to *time.Time) (*time.Time, *time.Time) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start := civilKey(*from)
		fromStart = &start
	}
	if to != nil {
		end := civilKey(*to).AddDate(0, 0, 1)
		toEnd = &end
	}
	return fromStart, toEnd
}
