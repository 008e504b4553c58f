// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package refresh runs the clock: poll the receiver, decide what to show,
// push it to the display, wait, repeat.
package refresh

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/gps_clock/internal/display"
	"github.com/relabs-tech/gps_clock/internal/gps"
	"github.com/relabs-tech/gps_clock/internal/readout"
)

// DefaultInterval is the wait between ticks; the receiver reports at 1 Hz.
const DefaultInterval = time.Second

// Sleeper is the loop's only suspension point.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Mirror receives a copy of every readout, e.g. an MQTT publisher.
// Mirror failures are logged and never stop the clock.
type Mirror interface {
	Publish(m readout.Message) error
}

// Loop owns the receiver and display for the life of the process.
type Loop struct {
	rx       gps.Receiver
	disp     display.Display
	mirrors  []Mirror
	sleeper  Sleeper
	interval time.Duration

	// only used to log transitions
	lastState readout.State
	ticks     uint64
}

type Option func(*Loop)

func WithInterval(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

func WithSleeper(s Sleeper) Option {
	return func(l *Loop) { l.sleeper = s }
}

func WithMirror(m Mirror) Option {
	return func(l *Loop) { l.mirrors = append(l.mirrors, m) }
}

func New(rx gps.Receiver, disp display.Display, opts ...Option) *Loop {
	l := &Loop{
		rx:       rx,
		disp:     disp,
		sleeper:  timerSleeper{},
		interval: DefaultInterval,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Tick runs one full refresh from scratch. Nothing from earlier ticks feeds
// into what is displayed.
func (l *Loop) Tick() (readout.Readout, error) {
	if err := l.rx.Poll(); err != nil {
		return readout.Readout{}, fmt.Errorf("poll receiver: %w", err)
	}

	ro := readout.Build(l.rx.Reading())
	if err := l.disp.Show(ro.Fields()); err != nil {
		return ro, fmt.Errorf("update display: %w", err)
	}

	for _, m := range l.mirrors {
		if err := m.Publish(ro.Message()); err != nil {
			log.Printf("clock: mirror publish error: %v", err)
		}
	}

	if l.ticks == 0 || ro.State != l.lastState {
		log.Printf("clock: state %s", ro.State)
	}
	l.lastState = ro.State
	l.ticks++
	return ro, nil
}

// Run ticks until ctx is cancelled or a collaborator fails. A receiver or
// display error is returned as is; the caller is expected to exit.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if _, err := l.Tick(); err != nil {
			return err
		}
		if err := l.sleeper.Sleep(ctx, l.interval); err != nil {
			return err
		}
	}
}
