package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromInvalid = errors.New("invalid from date")
	ErrRangeToInvalid   = errors.New("invalid to date")
	ErrRangeInvalid     = errors.New("invalid range")
)

// ParseDayRange reads optional YYYY-MM-DD bounds for list and export queries.
func ParseDayRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if value := strings.TrimSpace(rawFrom); value != "" {
		parsed, err := ParseCivilDay(value)
		if err != nil {
			return nil, nil, ErrRangeFromInvalid
		}
		from = &parsed
	}

	var to *time.Time
	if value := strings.TrimSpace(rawTo); value != "" {
		parsed, err := ParseCivilDay(value)
		if err != nil {
			return nil, nil, ErrRangeToInvalid
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrRangeInvalid
	}
	return from, to, nil
}
