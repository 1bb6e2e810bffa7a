package hub

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/soar/joyshop/internal/binding"
)

const statusInterval = 5 * time.Second

// DeviceLister reports the names of the connected controllers.
type DeviceLister interface {
	Connected() []string
}

// Reloader re-reads the binding table.
type Reloader interface {
	Reload() error
}

// Broadcaster forwards activation names from the dispatcher to every overlay
// client, and keeps clients informed about devices and bindings.
type Broadcaster struct {
	hub         *Hub
	activations <-chan string
	devices     DeviceLister
	store       *binding.Store
	reloader    Reloader
	seq         atomic.Int64
}

func NewBroadcaster(h *Hub, activations <-chan string, devices DeviceLister, store *binding.Store, reloader Reloader) *Broadcaster {
	return &Broadcaster{
		hub:         h,
		activations: activations,
		devices:     devices,
		store:       store,
		reloader:    reloader,
	}
}

// Run forwards activations and periodic device status until ctx is done or
// the activation channel is closed.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case name, ok := <-b.activations:
			if !ok {
				return
			}
			b.broadcast(NewActivationMessage(b.seq.Add(1), name))

		case <-ticker.C:
			b.broadcast(NewStatusMessage(b.seq.Add(1), b.devices.Connected()))
		}
	}
}

// NotifyBindings pushes a freshly loaded table to every client.
func (b *Broadcaster) NotifyBindings(t *binding.Table) {
	b.broadcast(NewBindingsMessage(b.seq.Add(1), t))
}

// SendInitialState queues the device list and binding table for a client
// that has not joined the hub yet, so they arrive before any broadcast.
func (b *Broadcaster) SendInitialState(c *Client) {
	c.queue(NewStatusMessage(b.seq.Add(1), b.devices.Connected()))
	c.queue(b.Bindings())
}

// Reload implements Commands.
func (b *Broadcaster) Reload() error {
	return b.reloader.Reload()
}

// Bindings implements Commands.
func (b *Broadcaster) Bindings() *WSMessage {
	return NewBindingsMessage(b.seq.Add(1), b.store.Load())
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	b.hub.Broadcast(msg)
}
