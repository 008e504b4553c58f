// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
)

// DefaultI2CAddr is the GTOP/PA1010D address.
const DefaultI2CAddr = 0x10

// I2CStream reads the NMEA byte stream from a GTOP module on I2C.
//
// The module pads its output buffer with '\n' when it has nothing queued, so
// repeated newlines are collapsed and a read that yields only padding is
// reported as io.EOF (idle).
type I2CStream struct {
	dev    *i2c.Dev
	chunk  [readChunk]byte
	lastNL bool
}

// NewI2CStream binds a stream to addr on bus.
func NewI2CStream(bus i2c.Bus, addr uint16) *I2CStream {
	return &I2CStream{dev: &i2c.Dev{Bus: bus, Addr: addr}}
}

func (s *I2CStream) Read(p []byte) (int, error) {
	want := len(p)
	if want > len(s.chunk) {
		want = len(s.chunk)
	}
	if want == 0 {
		return 0, nil
	}
	buf := s.chunk[:want]
	if err := s.dev.Tx(nil, buf); err != nil {
		return 0, fmt.Errorf("i2c read at 0x%02X: %w", s.dev.Addr, err)
	}

	n := 0
	for _, b := range buf {
		if b == '\n' && s.lastNL {
			continue
		}
		s.lastNL = b == '\n'
		p[n] = b
		n++
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (s *I2CStream) Write(p []byte) (int, error) {
	n, err := s.dev.Write(p)
	if err != nil {
		return n, fmt.Errorf("i2c write at 0x%02X: %w", s.dev.Addr, err)
	}
	return n, nil
}
