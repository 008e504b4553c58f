// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package gps talks to the GNSS receiver and exposes its latest parsed state.
package gps

import "github.com/relabs-tech/gps_clock/internal/calendar"

// Reading is the receiver state after the most recent poll.
// Every optional value is nil until a sentence carrying it has been parsed.
type Reading struct {
	HasFix    bool                `json:"has_fix"`
	Time      *calendar.Timestamp `json:"time_utc,omitempty"`
	Latitude  *float64            `json:"lat,omitempty"`   // decimal degrees, north positive
	Longitude *float64            `json:"lon,omitempty"`   // decimal degrees, east positive
	AltitudeM *float64            `json:"alt_m,omitempty"` // meters above mean sea level
}

// Receiver is the narrow view of a GNSS module used by the refresh loop.
type Receiver interface {
	// Poll advances parsing from the device. It must return within a bounded
	// time even when the device has nothing to say.
	Poll() error
	Reading() Reading
}
