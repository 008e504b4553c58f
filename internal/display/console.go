// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"io"

	"github.com/relabs-tech/gps_clock/internal/readout"
)

// Console prints each refresh as one line, for bench use without an OLED.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Show(f readout.Fields) error {
	_, err := fmt.Fprintf(c.w, "[CLOCK] %s  %s  %s  %s\n", f.DateTime, f.Latitude, f.Longitude, f.Altitude)
	return err
}
