// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package gps

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/gps_clock/internal/calendar"
)

const (
	// readChunk matches the GTOP I2C buffer size.
	readChunk = 32
	// maxReadsPerPoll bounds one Poll even on a receiver that never goes idle.
	maxReadsPerPoll = 64
	// NMEA sentences are at most 82 chars; anything longer without a newline is noise.
	maxLineLen = 256
)

// NMEAReceiver parses NMEA 0183 sentences from a byte stream (UART or I2C)
// and keeps the latest fix, time and position.
type NMEAReceiver struct {
	rw      io.ReadWriter
	chunk   []byte
	pending []byte

	hasFix bool

	haveClock            bool
	hour, minute, second int

	haveDate         bool
	year, month, day int

	lat, lon, alt *float64
}

// NewNMEAReceiver wraps an open transport.
func NewNMEAReceiver(rw io.ReadWriter) *NMEAReceiver {
	return &NMEAReceiver{
		rw:    rw,
		chunk: make([]byte, readChunk),
	}
}

// SendCommand writes one PMTK-style command, adding framing and checksum.
// cmd is the payload without '$' or '*', e.g. "PMTK220,1000".
func (r *NMEAReceiver) SendCommand(cmd string) error {
	line := fmt.Sprintf("$%s*%s\r\n", cmd, nmea.Checksum(cmd))
	if _, err := r.rw.Write([]byte(line)); err != nil {
		return fmt.Errorf("gps command %q: %w", cmd, err)
	}
	return nil
}

// Configure selects RMC+GGA output and sets the fix update interval.
func (r *NMEAReceiver) Configure(updateRate time.Duration) error {
	// Field order: GLL, RMC, VTG, GGA, GSA, GSV, ...
	if err := r.SendCommand("PMTK314,0,1,0,1,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0"); err != nil {
		return err
	}
	ms := updateRate.Milliseconds()
	if ms <= 0 {
		ms = 1000
	}
	return r.SendCommand(fmt.Sprintf("PMTK220,%d", ms))
}

// Poll drains whatever the transport has buffered and applies every complete
// sentence. io.EOF from the transport means "idle" and is not an error.
func (r *NMEAReceiver) Poll() error {
	for i := 0; i < maxReadsPerPoll; i++ {
		n, err := r.rw.Read(r.chunk)
		if n > 0 {
			r.feed(r.chunk[:n])
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gps read: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}

func (r *NMEAReceiver) feed(b []byte) {
	r.pending = append(r.pending, b...)
	for {
		idx := bytes.IndexByte(r.pending, '\n')
		if idx < 0 {
			break
		}
		line := string(r.pending[:idx])
		r.pending = r.pending[idx+1:]
		r.applyLine(line)
	}
	if len(r.pending) > maxLineLen {
		r.pending = r.pending[:0]
	}
}

func (r *NMEAReceiver) applyLine(line string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "$") {
		return
	}

	sentence, err := nmea.Parse(line)
	if err != nil {
		// partial sentences are normal right after power-up
		return
	}

	switch sentence.DataType() {
	case nmea.TypeRMC:
		r.applyRMC(sentence.(nmea.RMC))
	case nmea.TypeGGA:
		r.applyGGA(sentence.(nmea.GGA))
	case nmea.TypeZDA:
		r.applyZDA(sentence.(nmea.ZDA))
	default:
		// GSA, GSV, VTG and friends carry nothing we display
	}
}

// RMC fields: time, status, lat, N/S, lon, E/W, speed, course, date, ...
func (r *NMEAReceiver) applyRMC(m nmea.RMC) {
	r.hasFix = m.Validity == nmea.ValidRMC
	r.setClock(m.Time)
	if m.Date.Valid {
		r.year, r.month, r.day = 2000+m.Date.YY, m.Date.MM, m.Date.DD
		r.haveDate = true
	}
	r.lat = optionalValue(m.Fields, 2, m.Latitude)
	r.lon = optionalValue(m.Fields, 4, m.Longitude)
}

// GGA fields: time, lat, N/S, lon, E/W, quality, sats, hdop, altitude, M, ...
func (r *NMEAReceiver) applyGGA(m nmea.GGA) {
	r.hasFix = m.FixQuality != "" && m.FixQuality != nmea.Invalid
	r.setClock(m.Time)
	r.lat = optionalValue(m.Fields, 1, m.Latitude)
	r.lon = optionalValue(m.Fields, 3, m.Longitude)
	r.alt = optionalValue(m.Fields, 8, m.Altitude)
}

// ZDA carries a four digit year, so it overrides the RMC century guess.
func (r *NMEAReceiver) applyZDA(m nmea.ZDA) {
	r.setClock(m.Time)
	if m.Year > 0 && m.Month > 0 && m.Day > 0 {
		r.year, r.month, r.day = int(m.Year), int(m.Month), int(m.Day)
		r.haveDate = true
	}
}

func (r *NMEAReceiver) setClock(t nmea.Time) {
	if !t.Valid {
		return
	}
	r.hour, r.minute, r.second = t.Hour, t.Minute, t.Second
	r.haveClock = true
}

// Reading returns the state accumulated so far.
func (r *NMEAReceiver) Reading() Reading {
	out := Reading{
		HasFix:    r.hasFix,
		Latitude:  copyFloat(r.lat),
		Longitude: copyFloat(r.lon),
		AltitudeM: copyFloat(r.alt),
	}
	if r.haveClock && r.haveDate {
		ts := calendar.Date(r.year, r.month, r.day, r.hour, r.minute, r.second)
		if ts.Valid() {
			out.Time = &ts
		}
	}
	return out
}

// optionalValue returns nil when the raw NMEA field is empty, since the
// parser reports empty numeric fields as zero.
func optionalValue(fields []string, idx int, v float64) *float64 {
	if idx >= len(fields) || strings.TrimSpace(fields[idx]) == "" {
		return nil
	}
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
