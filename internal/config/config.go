// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// GPS transports.
const (
	TransportI2C    = "i2c"
	TransportSerial = "serial"
	TransportMock   = "mock"
)

// Display outputs.
const (
	OutputOLED    = "oled"
	OutputConsole = "console"
)

// Config holds all application configuration values.
type Config struct {
	// GPS
	GPSTransport    string `yaml:"gps_transport"`
	GPSI2CAddr      uint16 `yaml:"gps_i2c_addr"`
	GPSSerialPort   string `yaml:"gps_serial_port"`
	GPSBaudRate     int    `yaml:"gps_baud_rate"`
	GPSUpdateRateMs int    `yaml:"gps_update_rate_ms"`

	// I2C bus shared by GPS and display; empty picks the first bus
	I2CBus string `yaml:"i2c_bus"`

	// Display
	DisplayOutput  string `yaml:"display_output"` // "oled" or "console"
	DisplayI2CAddr uint16 `yaml:"display_i2c_addr"`
	DisplayBorder  int    `yaml:"display_border"` // pixels
	DisplayEcho    bool   `yaml:"display_echo"`   // also print each refresh to stdout

	// Timing
	RefreshInterval int `yaml:"refresh_interval"` // milliseconds

	// MQTT (empty broker disables the readout mirror)
	MQTTBroker          string `yaml:"mqtt_broker"`
	MQTTClientIDClock   string `yaml:"mqtt_client_id_clock"`
	MQTTClientIDWeb     string `yaml:"mqtt_client_id_web"`
	MQTTClientIDConsole string `yaml:"mqtt_client_id_console"`
	TopicReadout        string `yaml:"topic_readout"`

	// Web Server
	WebServerPort int `yaml:"web_server_port"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Default returns the settings used for any key the file leaves out.
func Default() *Config {
	return &Config{
		GPSTransport:        TransportI2C,
		GPSI2CAddr:          0x10,
		GPSSerialPort:       "/dev/serial0",
		GPSBaudRate:         9600,
		GPSUpdateRateMs:     1000,
		DisplayOutput:       OutputOLED,
		DisplayI2CAddr:      0x3D,
		DisplayBorder:       2,
		RefreshInterval:     1000,
		MQTTClientIDClock:   "gps-clock",
		MQTTClientIDWeb:     "gps-clock-web",
		MQTTClientIDConsole: "gps-clock-console",
		TopicReadout:        "gpsclock/readout",
		WebServerPort:       8080,
	}
}

// Load reads a configuration file. Files ending in .yaml or .yml are parsed
// as YAML, anything else as KEY=VALUE lines.
func Load(configPath string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return loadYAML(configPath)
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// GPS
	case "GPS_TRANSPORT":
		c.GPSTransport = value
	case "GPS_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid GPS_I2C_ADDR %q: %w", value, err)
		}
		c.GPSI2CAddr = uint16(addr)
	case "GPS_SERIAL_PORT":
		c.GPSSerialPort = value
	case "GPS_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_BAUD_RATE %q: %w", value, err)
		}
		c.GPSBaudRate = rate
	case "GPS_UPDATE_RATE_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid GPS_UPDATE_RATE_MS %q: %w", value, err)
		}
		c.GPSUpdateRateMs = ms

	case "I2C_BUS":
		c.I2CBus = value

	// Display
	case "DISPLAY_OUTPUT":
		c.DisplayOutput = value
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)
	case "DISPLAY_BORDER":
		border, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_BORDER %q: %w", value, err)
		}
		c.DisplayBorder = border
	case "DISPLAY_ECHO":
		echo, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_ECHO %q: %w", value, err)
		}
		c.DisplayEcho = echo

	// Timing
	case "REFRESH_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid REFRESH_INTERVAL %q: %w", value, err)
		}
		c.RefreshInterval = interval

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_CLOCK":
		c.MQTTClientIDClock = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "TOPIC_READOUT":
		c.TopicReadout = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate normalizes enum values and checks ranges and cross-field
// constraints after all keys are applied, whatever the file format.
func (c *Config) validate() error {
	c.GPSTransport = strings.ToLower(strings.TrimSpace(c.GPSTransport))
	c.DisplayOutput = strings.ToLower(strings.TrimSpace(c.DisplayOutput))

	if c.GPSUpdateRateMs < 100 || c.GPSUpdateRateMs > 10000 {
		return fmt.Errorf("GPS_UPDATE_RATE_MS must be 100-10000, got %d", c.GPSUpdateRateMs)
	}
	if c.DisplayBorder < 0 || c.DisplayBorder > 8 {
		return fmt.Errorf("DISPLAY_BORDER must be 0-8, got %d", c.DisplayBorder)
	}

	switch c.GPSTransport {
	case TransportI2C, TransportMock:
	case TransportSerial:
		if c.GPSSerialPort == "" {
			return fmt.Errorf("GPS_SERIAL_PORT is required for serial transport")
		}
		if c.GPSBaudRate == 0 {
			return fmt.Errorf("GPS_BAUD_RATE is required for serial transport")
		}
	default:
		return fmt.Errorf("GPS_TRANSPORT must be %q, %q or %q, got %q", TransportI2C, TransportSerial, TransportMock, c.GPSTransport)
	}

	switch c.DisplayOutput {
	case OutputOLED, OutputConsole:
	default:
		return fmt.Errorf("DISPLAY_OUTPUT must be %q or %q, got %q", OutputOLED, OutputConsole, c.DisplayOutput)
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive, got %d", c.RefreshInterval)
	}
	if c.MQTTBroker != "" && c.TopicReadout == "" {
		return fmt.Errorf("TOPIC_READOUT is required when MQTT_BROKER is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
