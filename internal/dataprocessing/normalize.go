package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recognized categorical values and date component bounds
const (
	valueYes      = "yes"
	valueSuccess  = "success"
	valueUnknown  = "unknown"
	minMonth      = 1
	maxMonth      = 12
	minDayOfMonth = 1
	maxDayOfMonth = 31
)

var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

func init() {
	for name, month := range monthNames {
		monthNames[name[:3]] = month
	}
	monthNames["sept"] = time.September
}

// NormalizeJob removes every "." then turns every "-" into "_"
func NormalizeJob(job string) string {
	return strings.ReplaceAll(strings.ReplaceAll(job, ".", ""), "-", "_")
}

// NormalizeEducation turns every "." into "_". Unknown or empty education
// is missing and returns nil.
func NormalizeEducation(education string) *string {
	normalized := strings.ReplaceAll(education, ".", "_")
	if normalized == "" || normalized == valueUnknown {
		return nil
	}
	return &normalized
}

// YesFlag encodes "yes" as 1 and anything else as 0
func YesFlag(value string) int {
	if value == valueYes {
		return 1
	}
	return 0
}

// SuccessFlag encodes "success" as 1 and anything else as 0
func SuccessFlag(value string) int {
	if value == valueSuccess {
		return 1
	}
	return 0
}

// ParseMonth accepts an English month name, its 3-letter abbreviation or a
// number from 1 to 12. Case and surrounding spaces are ignored.
func ParseMonth(value string) (time.Month, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if month, ok := monthNames[v]; ok {
		return month, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minMonth || n > maxMonth {
		return 0, fmt.Errorf("unrecognized month %q", value)
	}
	return time.Month(n), nil
}

// ParseDay accepts a day of month from 1 to 31, leading zeros allowed
func ParseDay(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < minDayOfMonth || n > maxDayOfMonth {
		return 0, fmt.Errorf("unrecognized day %q", value)
	}
	return n, nil
}

// ContactDate builds the calendar date year-month-day. A day past the end
// of the month is rejected rather than rolled into the next month.
func ContactDate(year int, month, day string) (time.Time, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return time.Time{}, err
	}

	date := time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	if date.Month() != m || date.Day() != d {
		return time.Time{}, fmt.Errorf("day %d is out of range for %s %d", d, m, year)
	}
	return date, nil
}
