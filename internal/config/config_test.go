// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "gps_clock_config.txt", "# nothing here\n\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_KeyValue(t *testing.T) {
	body := `
# receiver on the UART
GPS_TRANSPORT=serial
GPS_SERIAL_PORT = /dev/ttyAMA0
GPS_BAUD_RATE=115200
GPS_UPDATE_RATE_MS=500
DISPLAY_OUTPUT=console
DISPLAY_I2C_ADDR=0x3C
DISPLAY_BORDER=0
DISPLAY_ECHO=true
REFRESH_INTERVAL=250
MQTT_BROKER=tcp://localhost:1883
TOPIC_READOUT=clock/readout
WEB_SERVER_PORT=9090
`
	cfg, err := Load(writeConfig(t, "gps_clock_config.txt", body))
	require.NoError(t, err)

	assert.Equal(t, TransportSerial, cfg.GPSTransport)
	assert.Equal(t, "/dev/ttyAMA0", cfg.GPSSerialPort)
	assert.Equal(t, 115200, cfg.GPSBaudRate)
	assert.Equal(t, 500, cfg.GPSUpdateRateMs)
	assert.Equal(t, OutputConsole, cfg.DisplayOutput)
	assert.Equal(t, uint16(0x3C), cfg.DisplayI2CAddr)
	assert.Equal(t, 0, cfg.DisplayBorder)
	assert.True(t, cfg.DisplayEcho)
	assert.Equal(t, 250, cfg.RefreshInterval)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "clock/readout", cfg.TopicReadout)
	assert.Equal(t, 9090, cfg.WebServerPort)
	// untouched keys keep defaults
	assert.Equal(t, uint16(0x10), cfg.GPSI2CAddr)
	assert.Equal(t, "gps-clock", cfg.MQTTClientIDClock)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"missing equals":   "GPS_TRANSPORT serial\n",
		"unknown key":      "GPS_TRANSPORTS=serial\n",
		"bad address":      "DISPLAY_I2C_ADDR=0xZZ\n",
		"rate range":       "GPS_UPDATE_RATE_MS=50\n",
		"bad transport":    "GPS_TRANSPORT=usb\n",
		"bad output":       "DISPLAY_OUTPUT=lcd\n",
		"bad echo":         "DISPLAY_ECHO=maybe\n",
		"zero interval":    "REFRESH_INTERVAL=0\n",
		"serial sans port": "GPS_TRANSPORT=serial\nGPS_SERIAL_PORT=\n",
		"topic required":   "MQTT_BROKER=tcp://b:1883\nTOPIC_READOUT=\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.txt", body))
			assert.Error(t, err)
		})
	}

	yamlCases := map[string]string{
		"rate too low":     "gps_update_rate_ms: 50\n",
		"rate too high":    "gps_update_rate_ms: 20000\n",
		"border too wide":  "display_border: 40\n",
		"negative border":  "display_border: -1\n",
		"bad transport":    "gps_transport: usb\n",
		"bad output":       "display_output: lcd\n",
		"zero interval":    "refresh_interval: 0\n",
		"serial sans port": "gps_transport: serial\ngps_serial_port: \"\"\n",
	}
	for name, body := range yamlCases {
		t.Run("yaml "+name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnumsAreCaseInsensitive(t *testing.T) {
	cfg, err := Load(writeConfig(t, "c.txt", "GPS_TRANSPORT=I2C\nDISPLAY_OUTPUT=Console\n"))
	require.NoError(t, err)
	assert.Equal(t, TransportI2C, cfg.GPSTransport)
	assert.Equal(t, OutputConsole, cfg.DisplayOutput)

	cfg, err = Load(writeConfig(t, "c.yaml", "gps_transport: I2C\ndisplay_output: Console\n"))
	require.NoError(t, err)
	assert.Equal(t, TransportI2C, cfg.GPSTransport)
	assert.Equal(t, OutputConsole, cfg.DisplayOutput)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	body := `
gps_transport: mock
display_output: console
display_i2c_addr: 0x3C
refresh_interval: 2000
mqtt_broker: tcp://localhost:1883
`
	cfg, err := Load(writeConfig(t, "gps_clock.yaml", body))
	require.NoError(t, err)
	assert.Equal(t, TransportMock, cfg.GPSTransport)
	assert.Equal(t, OutputConsole, cfg.DisplayOutput)
	assert.Equal(t, uint16(0x3C), cfg.DisplayI2CAddr)
	assert.Equal(t, 2000, cfg.RefreshInterval)
	assert.Equal(t, "gpsclock/readout", cfg.TopicReadout)
}

func TestLoad_YAMLValidates(t *testing.T) {
	_, err := Load(writeConfig(t, "gps_clock.yml", "gps_transport: carrier-pigeon\n"))
	assert.Error(t, err)
}

func TestInitGlobal_OnlyOnce(t *testing.T) {
	first := writeConfig(t, "a.txt", "REFRESH_INTERVAL=111\n")
	second := writeConfig(t, "b.txt", "REFRESH_INTERVAL=222\n")

	require.NoError(t, InitGlobal(first))
	require.NoError(t, InitGlobal(second))
	require.NotNil(t, Get())
	assert.Equal(t, 111, Get().RefreshInterval)
}
