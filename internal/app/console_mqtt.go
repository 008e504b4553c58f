// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gps_clock/internal/config"
	"github.com/relabs-tech/gps_clock/internal/mirror"
)

// printReadout renders one mirrored payload the same way the console display
// does, plus the fix state.
func printReadout(w io.Writer, payload []byte) {
	msg, err := mirror.Decode(payload)
	if err != nil {
		log.Printf("console: %v", err)
		return
	}

	state := "NO_FIX"
	if msg.Fix {
		state = msg.Zone
	}
	fmt.Fprintf(w, "[%-6s] %s  %s  %s  %s\n",
		state, msg.DateTime, msg.Latitude, msg.Longitude, msg.Altitude)
}

func RunConsoleMQTT() error {
	cfg := config.Get()

	client, err := mirror.Connect(cfg.MQTTBroker, cfg.MQTTClientIDConsole)
	if err != nil {
		return err
	}

	token := client.Subscribe(cfg.TopicReadout, 0, func(_ mqtt.Client, msg mqtt.Message) {
		printReadout(os.Stdout, msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicReadout)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
