// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package mirror republishes clock readouts over MQTT so other processes
// (web page, console) can show what the OLED shows.
package mirror

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/gps_clock/internal/readout"
)

const publishTimeout = 500 * time.Millisecond

// Connect opens an MQTT connection the way every process in this repo does.
func Connect(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, token.Error())
	}
	log.Printf("mqtt: %s connected to %s", clientID, broker)
	return client, nil
}

// Publisher is the slice of mqtt.Client the mirror needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTT publishes each readout as retained JSON, so a subscriber that joins
// late still gets the current screen.
type MQTT struct {
	client Publisher
	topic  string
}

func NewMQTT(client Publisher, topic string) *MQTT {
	return &MQTT{client: client, topic: topic}
}

func (m *MQTT) Publish(msg readout.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("readout marshal: %w", err)
	}

	token := m.client.Publish(m.topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt publish to %s: timed out", m.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", m.topic, err)
	}
	return nil
}

// Decode parses a payload published by MQTT.Publish.
func Decode(payload []byte) (readout.Message, error) {
	var msg readout.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return readout.Message{}, fmt.Errorf("readout unmarshal: %w", err)
	}
	return msg, nil
}
