// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package localtime converts receiver UTC time to US Eastern civil time.
//
// Only one rule is supported: daylight time runs from the second Sunday of
// March at 02:00 EST to the first Sunday of November at 02:00 EDT. There is
// no timezone database behind this and none is wanted.
package localtime

import "github.com/relabs-tech/gps_clock/internal/calendar"

const (
	// StandardOffset is EST, in hours from UTC.
	StandardOffset = -5
	// DaylightOffset is EDT, in hours from UTC.
	DaylightOffset = -4

	// 02:00 EST and 02:00 EDT expressed in UTC.
	dstStartHourUTC = 7
	dstEndHourUTC   = 6
)

// DSTWindow is the half-open UTC interval [Start, End) during which daylight
// time is in effect for one year.
type DSTWindow struct {
	Start calendar.Timestamp `json:"start"`
	End   calendar.Timestamp `json:"end"`
}

// Contains reports whether ts falls inside the window. Start is inclusive and
// End is exclusive.
func (w DSTWindow) Contains(ts calendar.Timestamp) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// FirstSunday returns the day of month of the first Sunday in month.
func FirstSunday(year, month int) int {
	wd := calendar.Weekday(year, month, 1)
	return 1 + ((calendar.Sunday-wd)%7+7)%7
}

// DSTBounds returns the daylight window for year.
func DSTBounds(year int) DSTWindow {
	secondSundayMar := FirstSunday(year, 3) + 7
	firstSundayNov := FirstSunday(year, 11)
	return DSTWindow{
		Start: calendar.Date(year, 3, secondSundayMar, dstStartHourUTC, 0, 0),
		End:   calendar.Date(year, 11, firstSundayNov, dstEndHourUTC, 0, 0),
	}
}
