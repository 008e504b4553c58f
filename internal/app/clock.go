// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/gps_clock/internal/config"
	"github.com/relabs-tech/gps_clock/internal/display"
	"github.com/relabs-tech/gps_clock/internal/gps"
	"github.com/relabs-tech/gps_clock/internal/mirror"
	"github.com/relabs-tech/gps_clock/internal/readout"
	"github.com/relabs-tech/gps_clock/internal/refresh"
)

// hardware keeps the shared I2C bus and anything else that needs closing.
type hardware struct {
	bus     i2c.BusCloser
	closers []io.Closer
}

func (h *hardware) i2cBus(name string) (i2c.Bus, error) {
	if h.bus != nil {
		return h.bus, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus: %w", err)
	}
	h.bus = bus
	return bus, nil
}

func (h *hardware) Close() {
	for i := len(h.closers) - 1; i >= 0; i-- {
		_ = h.closers[i].Close()
	}
	if h.bus != nil {
		_ = h.bus.Close()
	}
}

// RunClock builds the receiver and display from config and runs the refresh
// loop until SIGINT/SIGTERM or a hardware failure.
func RunClock() error {
	cfg := config.Get()
	hw := &hardware{}
	defer hw.Close()

	rx, err := openReceiver(cfg, hw)
	if err != nil {
		return err
	}

	disp, err := openDisplay(cfg, hw)
	if err != nil {
		return err
	}
	disp = withEcho(cfg, disp, os.Stdout)

	opts := []refresh.Option{
		refresh.WithInterval(time.Duration(cfg.RefreshInterval) * time.Millisecond),
	}
	if cfg.MQTTBroker != "" {
		client, err := mirror.Connect(cfg.MQTTBroker, cfg.MQTTClientIDClock)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		opts = append(opts, refresh.WithMirror(mirror.NewMQTT(client, cfg.TopicReadout)))
		log.Printf("clock: mirroring readout to %s", cfg.TopicReadout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("clock: starting refresh loop every %dms", cfg.RefreshInterval)
	err = refresh.New(rx, disp, opts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("clock: shutting down")
		return nil
	}
	return err
}

func openReceiver(cfg *config.Config, hw *hardware) (gps.Receiver, error) {
	var rw io.ReadWriter

	switch cfg.GPSTransport {
	case config.TransportMock:
		log.Println("gps: using mock receiver")
		return gps.NewMockReceiver(time.Now), nil

	case config.TransportSerial:
		port, err := gps.OpenSerial(cfg.GPSSerialPort, cfg.GPSBaudRate)
		if err != nil {
			return nil, err
		}
		hw.closers = append(hw.closers, port)
		rw = port
		log.Printf("gps: serial port opened on %s at %d baud", cfg.GPSSerialPort, cfg.GPSBaudRate)

	case config.TransportI2C:
		bus, err := hw.i2cBus(cfg.I2CBus)
		if err != nil {
			return nil, err
		}
		rw = gps.NewI2CStream(bus, cfg.GPSI2CAddr)
		log.Printf("gps: receiver on I2C at 0x%02X", cfg.GPSI2CAddr)

	default:
		return nil, fmt.Errorf("unknown GPS transport %q", cfg.GPSTransport)
	}

	rx := gps.NewNMEAReceiver(rw)
	if err := rx.Configure(time.Duration(cfg.GPSUpdateRateMs) * time.Millisecond); err != nil {
		return nil, fmt.Errorf("failed to configure receiver: %w", err)
	}
	return rx, nil
}

func openDisplay(cfg *config.Config, hw *hardware) (display.Display, error) {
	switch cfg.DisplayOutput {
	case config.OutputConsole:
		return display.NewConsole(os.Stdout), nil

	case config.OutputOLED:
		bus, err := hw.i2cBus(cfg.I2CBus)
		if err != nil {
			return nil, err
		}
		oled, err := display.NewOLED(bus, cfg.DisplayI2CAddr, cfg.DisplayBorder)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize display: %w", err)
		}
		hw.closers = append(hw.closers, haltCloser{oled})

		// the fallback labels are up before the first fix, as on power-up
		if err := oled.Show(readout.Fallback()); err != nil {
			return nil, fmt.Errorf("failed to draw initial labels: %w", err)
		}
		return oled, nil

	default:
		return nil, fmt.Errorf("unknown display output %q", cfg.DisplayOutput)
	}
}

// withEcho adds a console copy of every refresh when DISPLAY_ECHO is set.
// The console output is already a console, so it is left alone.
func withEcho(cfg *config.Config, disp display.Display, w io.Writer) display.Display {
	if !cfg.DisplayEcho || cfg.DisplayOutput == config.OutputConsole {
		return disp
	}
	return display.Multi{disp, display.NewConsole(w)}
}

type haltCloser struct{ oled *display.OLED }

func (h haltCloser) Close() error { return h.oled.Halt() }
