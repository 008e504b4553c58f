// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package calendar holds proleptic Gregorian date arithmetic used to turn
// receiver UTC time into local civil time.
package calendar

// Weekday numbers, Monday first.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayName returns the three-letter name for a weekday number in [0,6].
func WeekdayName(wd int) string {
	if wd < Monday || wd > Sunday {
		return "???"
	}
	return weekdayNames[wd]
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the length of month (1-12) in year.
// The caller guarantees the month is in range.
func DaysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 30
	}
}

// Weekday returns the day of week for a date, 0=Monday ... 6=Sunday.
//
// Zeller's congruence: January and February count as months 13 and 14 of the
// previous year. The raw result h has 0=Saturday and is rotated to Monday-first.
func Weekday(year, month, day int) int {
	y, m := year, month
	if m < 3 {
		y--
		m += 12
	}
	k := y % 100
	j := y / 100
	h := (day + (13*(m+1))/5 + k + k/4 + j/4 + 5*j) % 7
	return (h + 5) % 7
}
