// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package display renders the four clock lines on an output device.
package display

import "github.com/relabs-tech/gps_clock/internal/readout"

// Display accepts the four text lines of one refresh.
type Display interface {
	Show(f readout.Fields) error
}

// Multi shows the same lines on several displays, in order.
// The first failing display aborts the push.
type Multi []Display

func (m Multi) Show(f readout.Fields) error {
	for _, d := range m {
		if err := d.Show(f); err != nil {
			return err
		}
	}
	return nil
}
