// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/gps_clock/internal/app"
	"github.com/relabs-tech/gps_clock/internal/config"
)

func main() {
	configPath := flag.String("config", "gps_clock_config.txt", "path to config file (KEY=VALUE or .yaml)")
	flag.Parse()

	log.Println("starting gps-clock")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunClock(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
