// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/gps_clock/internal/app"
	"github.com/relabs-tech/gps_clock/internal/config"
)

func main() {
	log.Println("starting gps-clock console (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal("gps_clock_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if config.Get().MQTTBroker == "" {
		log.Fatalf("MQTT_BROKER is not set in gps_clock_config.txt")
	}

	if err := app.RunConsoleMQTT(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
