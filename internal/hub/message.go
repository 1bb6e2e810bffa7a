package hub

import (
	"time"

	"github.com/soar/joyshop/internal/binding"
)

// Message types sent to overlay clients.
const (
	TypeActivation = "activation"
	TypeStatus     = "status"
	TypeBindings   = "bindings"
	TypeReloaded   = "reloaded"
	TypeError      = "error"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string          `json:"type"`
	Seq       int64           `json:"seq"`
	Timestamp int64           `json:"timestamp"` // Unix milliseconds
	Name      string          `json:"name,omitempty"`     // activation display name
	Devices   []string        `json:"devices,omitempty"`  // connected controllers, for "status"
	Bindings  []binding.Entry `json:"bindings,omitempty"` // current table, for "bindings"
	Error     string          `json:"error,omitempty"`
}

func newMessage(typ string, seq int64) *WSMessage {
	return &WSMessage{Type: typ, Seq: seq, Timestamp: time.Now().UnixMilli()}
}

// NewActivationMessage announces that a binding fired.
func NewActivationMessage(seq int64, name string) *WSMessage {
	m := newMessage(TypeActivation, seq)
	m.Name = name
	return m
}

// NewStatusMessage lists the connected controllers.
func NewStatusMessage(seq int64, devices []string) *WSMessage {
	m := newMessage(TypeStatus, seq)
	m.Devices = devices
	return m
}

func NewBindingsMessage(seq int64, t *binding.Table) *WSMessage {
	m := newMessage(TypeBindings, seq)
	if t != nil {
		m.Bindings = t.Entries()
	}
	return m
}

// NewReplyMessage answers a client command. A nil err means success.
func NewReplyMessage(typ string, err error) *WSMessage {
	m := newMessage(typ, 0)
	if err != nil {
		m.Type = TypeError
		m.Error = err.Error()
	}
	return m
}

// Requests an overlay client may send.
const (
	RequestReload   = "reload"
	RequestBindings = "bindings"
)

// ClientMessage is a request from an overlay client.
type ClientMessage struct {
	Type string `json:"type"`
}
