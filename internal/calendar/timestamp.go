// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package calendar

import "fmt"

// Timestamp is a broken-down civil date and time with one-second resolution.
// It carries no zone; whether it is UTC or local is up to the holder.
type Timestamp struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// Date builds a Timestamp from its six fields.
func Date(year, month, day, hour, minute, second int) Timestamp {
	return Timestamp{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
}

// Compare orders timestamps field by field from year down to second.
// It returns -1, 0 or +1.
func (t Timestamp) Compare(o Timestamp) int {
	a := [6]int{t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second}
	b := [6]int{o.Year, o.Month, o.Day, o.Hour, o.Minute, o.Second}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Before reports whether t sorts strictly before o.
func (t Timestamp) Before(o Timestamp) bool {
	return t.Compare(o) < 0
}

// Valid reports whether every field is within its calendar range.
func (t Timestamp) Valid() bool {
	if t.Month < 1 || t.Month > 12 {
		return false
	}
	if t.Day < 1 || t.Day > DaysInMonth(t.Month, t.Year) {
		return false
	}
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// Weekday is the day of week of the date part, 0=Monday.
func (t Timestamp) Weekday() int {
	return Weekday(t.Year, t.Month, t.Day)
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
