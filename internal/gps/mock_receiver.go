// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"time"

	"github.com/relabs-tech/gps_clock/internal/calendar"
)

type mockReceiver struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewMockReceiver creates a bench receiver that needs no hardware.
// It reports no fix for the first 5s, then a fix without altitude for 5s,
// then a full fix near Boston using the host clock as UTC time.
func NewMockReceiver(now func() time.Time) Receiver {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &mockReceiver{now: now, start: t, last: t}
}

func (m *mockReceiver) Poll() error {
	m.last = m.now()
	return nil
}

func (m *mockReceiver) Reading() Reading {
	elapsed := m.last.Sub(m.start)
	if elapsed < 5*time.Second {
		return Reading{}
	}

	u := m.last.UTC()
	ts := calendar.Date(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
	lat := 42.360100
	lon := -71.058900
	r := Reading{
		HasFix:    true,
		Time:      &ts,
		Latitude:  &lat,
		Longitude: &lon,
	}
	if elapsed >= 10*time.Second {
		alt := 43.2
		r.AltitudeM = &alt
	}
	return r
}
