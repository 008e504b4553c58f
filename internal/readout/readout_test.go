// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package readout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gps_clock/internal/calendar"
	"github.com/relabs-tech/gps_clock/internal/gps"
)

func ptr(v float64) *float64 { return &v }

func tsPtr(ts calendar.Timestamp) *calendar.Timestamp { return &ts }

func TestBuild_NoFixIgnoresPartialData(t *testing.T) {
	readings := []gps.Reading{
		{},
		{HasFix: true},
		{HasFix: false, Time: tsPtr(calendar.Date(2024, 7, 4, 16, 0, 0)), Latitude: ptr(1), Longitude: ptr(2), AltitudeM: ptr(3)},
		{HasFix: true, Latitude: ptr(1), Longitude: ptr(2), AltitudeM: ptr(3)},
	}
	for _, r := range readings {
		ro := Build(r)
		assert.Equal(t, NoFix, ro.State)
		assert.Equal(t, Fields{
			DateTime:  "--/--/---- --:--:--",
			Latitude:  "Lat: --.------",
			Longitude: "Lon: --.------",
			Altitude:  "Alt: ----.- m",
		}, ro.Fields())
	}
}

func TestBuild_FixWithMissingLatitude(t *testing.T) {
	ro := Build(gps.Reading{
		HasFix:    true,
		Time:      tsPtr(calendar.Date(2024, 3, 1, 3, 0, 0)),
		Longitude: ptr(-122.4194),
		AltitudeM: ptr(10.0),
	})

	require.Equal(t, Fix, ro.State)
	f := ro.Fields()
	assert.Equal(t, "02/29/2024 22:00:00", f.DateTime)
	assert.Equal(t, "Lat: --.------", f.Latitude)
	assert.Equal(t, "Lon: -122.419400", f.Longitude)
	assert.Equal(t, "Alt: 10.0 m", f.Altitude)
}

func TestBuild_FixAllFields(t *testing.T) {
	ro := Build(gps.Reading{
		HasFix:    true,
		Time:      tsPtr(calendar.Date(2024, 3, 10, 7, 0, 0)),
		Latitude:  ptr(42.3601),
		Longitude: ptr(-71.0589),
		AltitudeM: ptr(-3.26),
	})

	assert.Equal(t, "EDT", ro.Zone)
	assert.Equal(t, Fields{
		DateTime:  "03/10/2024 03:00:00",
		Latitude:  "Lat: 42.360100",
		Longitude: "Lon: -71.058900",
		Altitude:  "Alt: -3.3 m",
	}, ro.Fields())
}

func TestBuild_FallBackInstantIsStandardTime(t *testing.T) {
	ro := Build(gps.Reading{HasFix: true, Time: tsPtr(calendar.Date(2024, 11, 3, 6, 0, 0))})
	assert.Equal(t, "EST", ro.Zone)
	assert.Equal(t, "11/03/2024 01:00:00", ro.Fields().DateTime)

	ro = Build(gps.Reading{HasFix: true, Time: tsPtr(calendar.Date(2024, 11, 3, 5, 59, 59))})
	assert.Equal(t, "EDT", ro.Zone)
	assert.Equal(t, "11/03/2024 01:59:59", ro.Fields().DateTime)
}

func TestFormatDateTime_ZeroPads(t *testing.T) {
	assert.Equal(t, "01/02/0999 03:04:05", FormatDateTime(calendar.Date(999, 1, 2, 3, 4, 5)))
}

func TestMessage_JSON(t *testing.T) {
	ro := Build(gps.Reading{
		HasFix:   true,
		Time:     tsPtr(calendar.Date(2024, 1, 1, 0, 30, 0)),
		Latitude: ptr(42.3601),
	})

	b, err := json.Marshal(ro.Message())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime": "12/31/2023 19:30:00",
		"lat": "Lat: 42.360100",
		"lon": "Lon: --.------",
		"alt": "Alt: ----.- m",
		"fix": true,
		"zone": "EST",
		"weekday": "Sun"
	}`, string(b))

	b, err = json.Marshal(Build(gps.Reading{}).Message())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime": "--/--/---- --:--:--",
		"lat": "Lat: --.------",
		"lon": "Lon: --.------",
		"alt": "Alt: ----.- m",
		"fix": false
	}`, string(b))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "FIX", Fix.String())
	assert.Equal(t, "NO_FIX", NoFix.String())
}
