// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package localtime

import "github.com/relabs-tech/gps_clock/internal/calendar"

// Offset returns the UTC offset in hours that applies at the UTC instant ts.
func Offset(ts calendar.Timestamp) int {
	if DSTBounds(ts.Year).Contains(ts) {
		return DaylightOffset
	}
	return StandardOffset
}

// Zone returns the zone abbreviation and offset in effect at ts.
func Zone(ts calendar.Timestamp) (string, int) {
	off := Offset(ts)
	if off == DaylightOffset {
		return "EDT", off
	}
	return "EST", off
}

// ToLocal converts a UTC timestamp to Eastern local time.
func ToLocal(ts calendar.Timestamp) calendar.Timestamp {
	return ApplyOffset(ts, Offset(ts))
}

// ApplyOffset shifts ts by offset hours and normalizes the date. The offset
// must satisfy |offset| < 24, so at most one day rolls over.
func ApplyOffset(ts calendar.Timestamp, offset int) calendar.Timestamp {
	out := ts
	out.Hour = ts.Hour + offset

	switch {
	case out.Hour < 0:
		out.Hour += 24
		out.Day--
		if out.Day < 1 {
			out.Month--
			if out.Month < 1 {
				out.Month = 12
				out.Year--
			}
			out.Day = calendar.DaysInMonth(out.Month, out.Year)
		}
	case out.Hour >= 24:
		out.Hour -= 24
		out.Day++
		if out.Day > calendar.DaysInMonth(out.Month, out.Year) {
			out.Day = 1
			out.Month++
			if out.Month > 12 {
				out.Month = 1
				out.Year++
			}
		}
	}
	return out
}
