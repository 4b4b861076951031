// Package validation checks user-entered calendar fields before they reach
// the simulation clock. Invalid input is reported, never applied: the edit
// is discarded and the clock keeps its current value.
package validation

import (
	"fmt"
)

// Calendar field limits. Years are generous on purpose; the clock is
// unbounded, only the text entry path is range-checked.
const (
	MinYear = -9999
	MaxYear = 9999
)

// daysInMonth for non-leap years, 1-indexed by month.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// ValidateDate checks a year/month/day triple entered by the user.
func ValidateDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range [1, 12]", month)
	}
	max := daysInMonth[month]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	if day < 1 || day > max {
		return fmt.Errorf("day %d out of range [1, %d] for month %d", day, max, month)
	}
	return nil
}

// ValidateTime checks an hour/minute/second triple entered by the user.
func ValidateTime(hour, minute, second int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour %d out of range [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute %d out of range [0, 59]", minute)
	}
	if second < 0 || second > 59 {
		return fmt.Errorf("second %d out of range [0, 59]", second)
	}
	return nil
}

// isLeapYear implements the Gregorian leap rule.
func isLeapYear(year int) bool {
	switch {
	case year%400 == 0:
		return true
	case year%100 == 0:
		return false
	default:
		return year%4 == 0
	}
}
