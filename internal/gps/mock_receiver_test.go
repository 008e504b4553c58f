// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/gps_clock/internal/calendar"
)

func TestMockReceiver_Phases(t *testing.T) {
	now := time.Date(2024, 11, 3, 5, 59, 50, 0, time.UTC)
	rx := NewMockReceiver(func() time.Time { return now })

	require.NoError(t, rx.Poll())
	assert.Equal(t, Reading{}, rx.Reading())

	now = now.Add(6 * time.Second)
	require.NoError(t, rx.Poll())
	got := rx.Reading()
	assert.True(t, got.HasFix)
	require.NotNil(t, got.Time)
	assert.Equal(t, calendar.Date(2024, 11, 3, 5, 59, 56), *got.Time)
	assert.NotNil(t, got.Latitude)
	assert.NotNil(t, got.Longitude)
	assert.Nil(t, got.AltitudeM)

	now = now.Add(5 * time.Second)
	require.NoError(t, rx.Poll())
	got = rx.Reading()
	require.NotNil(t, got.AltitudeM)
	assert.InDelta(t, 43.2, *got.AltitudeM, 1e-9)
}
