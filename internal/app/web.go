// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/gps_clock/internal/config"
	"github.com/relabs-tech/gps_clock/internal/mirror"
	"github.com/relabs-tech/gps_clock/internal/readout"
)

const wsWriteTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// readoutHub keeps the last mirrored readout and pushes every new one to the
// connected browsers.
type readoutHub struct {
	mu      sync.RWMutex
	last    readout.Message
	haveMsg bool
	clients map[*websocket.Conn]*sync.Mutex
}

func newReadoutHub() *readoutHub {
	return &readoutHub{clients: make(map[*websocket.Conn]*sync.Mutex)}
}

// handlePayload is the MQTT callback body.
func (h *readoutHub) handlePayload(payload []byte) {
	msg, err := mirror.Decode(payload)
	if err != nil {
		log.Printf("web: %v", err)
		return
	}

	h.mu.Lock()
	h.last = msg
	h.haveMsg = true
	clients := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, mu := range h.clients {
		clients[c] = mu
	}
	h.mu.Unlock()

	for c, mu := range clients {
		if err := writeMessage(c, mu, msg); err != nil {
			log.Printf("web: dropping websocket client: %v", err)
			h.remove(c)
		}
	}
}

func writeMessage(c *websocket.Conn, mu *sync.Mutex, msg readout.Message) error {
	mu.Lock()
	defer mu.Unlock()
	_ = c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.WriteJSON(msg)
}

func (h *readoutHub) latest() (readout.Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last, h.haveMsg
}

func (h *readoutHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (h *readoutHub) handleReadout(w http.ResponseWriter, r *http.Request) {
	msg, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

func (h *readoutHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}

	// the current screen goes out before the client joins the broadcast set,
	// so it can never land on top of a newer readout
	mu := &sync.Mutex{}
	h.mu.Lock()
	if h.haveMsg {
		if err := writeMessage(conn, mu, h.last); err != nil {
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
	h.clients[conn] = mu
	h.mu.Unlock()

	// the browser never sends anything; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket error: %v", err)
			}
			h.remove(conn)
			return
		}
	}
}

func (h *readoutHub) routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/readout", h.handleReadout)
	mux.HandleFunc("/ws", h.handleWS)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

// RunWeb subscribes to the mirrored readout and serves it to browsers.
func RunWeb() error {
	cfg := config.Get()
	hub := newReadoutHub()

	client, err := mirror.Connect(cfg.MQTTBroker, cfg.MQTTClientIDWeb)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	token := client.Subscribe(cfg.TopicReadout, 0, func(_ mqtt.Client, msg mqtt.Message) {
		hub.handlePayload(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicReadout)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, hub.routes("web"))
}
