// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func chunk32(s string) []byte {
	b := bytes.Repeat([]byte{'\n'}, readChunk)
	copy(b, s)
	return b
}

func TestI2CStream_CollapsesNewlinePadding(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DefaultI2CAddr, R: chunk32("$GPGGA,1")},
		{Addr: DefaultI2CAddr, R: chunk32("")},
	}}
	s := NewI2CStream(bus, DefaultI2CAddr)
	buf := make([]byte, 64)

	n, err := s.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "$GPGGA,1\n", string(buf[:n]))

	n, err = s.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF, "pure padding reads as idle")

	require.NoError(t, bus.Close())
}

func TestI2CStream_WriteGoesToDeviceAddress(t *testing.T) {
	cmd := []byte("$PMTK220,1000*1F\r\n")
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{
		{Addr: DefaultI2CAddr, W: cmd},
	}}
	s := NewI2CStream(bus, DefaultI2CAddr)

	n, err := s.Write(cmd)
	require.NoError(t, err)
	assert.Equal(t, len(cmd), n)
	require.NoError(t, bus.Close())
}

func TestI2CStream_FeedsNMEAReceiver(t *testing.T) {
	line := nmeaLine("GPRMC,065959,A,4807.038,N,12225.164,W,022.4,084.4,100324,003.1,W")
	var ops []i2ctest.IO
	for rest := line; len(rest) > 0; {
		n := readChunk
		if n > len(rest) {
			n = len(rest)
		}
		ops = append(ops, i2ctest.IO{Addr: DefaultI2CAddr, R: chunk32(rest[:n])})
		rest = rest[n:]
	}
	ops = append(ops, i2ctest.IO{Addr: DefaultI2CAddr, R: chunk32("")})

	bus := &i2ctest.Playback{Ops: ops}
	r := NewNMEAReceiver(NewI2CStream(bus, DefaultI2CAddr))
	require.NoError(t, r.Poll())

	got := r.Reading()
	assert.True(t, got.HasFix)
	require.NotNil(t, got.Time)
	require.NoError(t, bus.Close())
}
