package utils

import (
	"fmt"
	"math"
	"time"
)

// Pagination represents the pagination details.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// CreatePagination creates a Pagination object.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

var dateFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02-01-2006",
}

// ParseDate parses a date string, trying the formats clients actually send.
func ParseDate(dateStr string) (time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// ParseClock parses an HH:MM clock string into hour and minute. Trailing
// text and out-of-range values are rejected.
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", clock)
	}
	return t.Hour(), t.Minute(), nil
}
