package hub

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Hub fans overlay messages out to the connected clients. Membership changes
// go through Run so that a client's send channel is closed exactly once.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	join  chan *Client
	leave chan *Client
	done  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		join:    make(chan *Client),
		leave:   make(chan *Client),
		done:    make(chan struct{}),
	}
}

// Register adds c. After Run has returned it closes c's send channel instead.
func (h *Hub) Register(c *Client) {
	select {
	case h.join <- c:
	case <-h.done:
		c.closeSend()
	}
}

// Unregister removes c and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.leave <- c:
	case <-h.done:
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast encodes msg once and queues it for every client. An overlay that
// cannot keep up is evicted; the others never wait for it.
func (h *Hub) Broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.offer(data) {
			go h.Unregister(c)
		}
	}
}

// Send queues msg for c alone. It is a no-op once c has left.
func (h *Hub) Send(c *Client, msg *WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	c.queue(msg)
}

// Run processes joins and leaves until ctx is done, then disconnects every
// remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.join:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("Overlay connected (total: %d)", n)

		case c := <-h.leave:
			h.mu.Lock()
			_, ok := h.clients[c]
			if ok {
				delete(h.clients, c)
				c.closeSend()
			}
			n := len(h.clients)
			h.mu.Unlock()
			if ok {
				log.Printf("Overlay disconnected (total: %d)", n)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	close(h.done)
	for c := range h.clients {
		delete(h.clients, c)
		c.closeSend()
	}
}
