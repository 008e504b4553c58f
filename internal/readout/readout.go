// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package readout decides what the clock shows for one receiver reading.
package readout

import (
	"fmt"

	"github.com/relabs-tech/gps_clock/internal/calendar"
	"github.com/relabs-tech/gps_clock/internal/gps"
	"github.com/relabs-tech/gps_clock/internal/localtime"
)

// Text shown when a value is unknown.
const (
	NoDateTime  = "--/--/---- --:--:--"
	NoLatitude  = "Lat: --.------"
	NoLongitude = "Lon: --.------"
	NoAltitude  = "Alt: ----.- m"
)

// State is the display state for one tick.
type State int

const (
	NoFix State = iota
	Fix
)

func (s State) String() string {
	if s == Fix {
		return "FIX"
	}
	return "NO_FIX"
}

// Position holds independently optional coordinates.
type Position struct {
	Latitude  *float64
	Longitude *float64
	AltitudeM *float64
}

// Readout is the full display state. Local, Zone and Position are only
// meaningful in the Fix state.
type Readout struct {
	State    State
	Local    calendar.Timestamp
	Zone     string
	Position Position
}

// Fields are the four text lines handed to a display.
type Fields struct {
	DateTime  string `json:"datetime"`
	Latitude  string `json:"lat"`
	Longitude string `json:"lon"`
	Altitude  string `json:"alt"`
}

// Fallback is what every display shows before the first fix.
func Fallback() Fields {
	return Fields{
		DateTime:  NoDateTime,
		Latitude:  NoLatitude,
		Longitude: NoLongitude,
		Altitude:  NoAltitude,
	}
}

// Build classifies a reading. A fix needs both fix validity and a UTC time;
// anything else is NoFix, even if the receiver has partial data.
func Build(r gps.Reading) Readout {
	if !r.HasFix || r.Time == nil {
		return Readout{State: NoFix}
	}

	zone, _ := localtime.Zone(*r.Time)
	return Readout{
		State: Fix,
		Local: localtime.ToLocal(*r.Time),
		Zone:  zone,
		Position: Position{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			AltitudeM: r.AltitudeM,
		},
	}
}

// Fields formats the readout for display.
func (ro Readout) Fields() Fields {
	if ro.State != Fix {
		return Fallback()
	}

	f := Fields{
		DateTime:  FormatDateTime(ro.Local),
		Latitude:  NoLatitude,
		Longitude: NoLongitude,
		Altitude:  NoAltitude,
	}
	if ro.Position.Latitude != nil {
		f.Latitude = fmt.Sprintf("Lat: %.6f", *ro.Position.Latitude)
	}
	if ro.Position.Longitude != nil {
		f.Longitude = fmt.Sprintf("Lon: %.6f", *ro.Position.Longitude)
	}
	if ro.Position.AltitudeM != nil {
		f.Altitude = fmt.Sprintf("Alt: %.1f m", *ro.Position.AltitudeM)
	}
	return f
}

// FormatDateTime renders MM/DD/YYYY HH:MM:SS.
func FormatDateTime(ts calendar.Timestamp) string {
	return fmt.Sprintf("%02d/%02d/%04d %02d:%02d:%02d", ts.Month, ts.Day, ts.Year, ts.Hour, ts.Minute, ts.Second)
}

// Message is the JSON form published to mirrors: the four display lines
// plus a few extras the small screen has no room for.
type Message struct {
	Fields
	Fix     bool   `json:"fix"`
	Zone    string `json:"zone,omitempty"`
	Weekday string `json:"weekday,omitempty"`
}

func (ro Readout) Message() Message {
	m := Message{Fields: ro.Fields()}
	if ro.State == Fix {
		m.Fix = true
		m.Zone = ro.Zone
		m.Weekday = calendar.WeekdayName(ro.Local.Weekday())
	}
	return m
}
