package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soar/joyshop/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		client := hub.NewClient(h, conn)
		b.SendInitialState(client)
		h.Register(client)

		go client.WritePump()
		go client.ReadPump(b)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func handleBindings(b *hub.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := b.Bindings()
		if msg.Bindings == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no binding table loaded"})
			return
		}
		writeJSON(w, http.StatusOK, msg.Bindings)
	}
}

func handleReload(b *hub.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := b.Reload(); err != nil {
			log.Printf("Reload via API failed: %v", err)
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"reloaded": true})
	}
}

func handleDevices(devices hub.DeviceLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := devices.Connected()
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}
}
