package hub

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

const sendBuffer = 256

// Commands answers requests sent by overlay clients.
type Commands interface {
	// Reload re-reads the binding table from disk.
	Reload() error
	// Bindings returns the current table as a bindings message.
	Bindings() *WSMessage
}

// Client is one overlay connection. Messages are queued on send and written
// by WritePump; the hub closes send when the client leaves.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// offer queues data without blocking and reports whether it fit.
func (c *Client) offer(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) queue(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	c.offer(data)
}

func (c *Client) closeSend() {
	close(c.send)
}

// WritePump writes queued messages until the send channel is closed or the
// connection fails.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// ReadPump reads client commands until the connection closes, answering each
// through cmds.
func (c *Client) ReadPump(cmds Commands) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var req ClientMessage
		if err := json.Unmarshal(data, &req); err != nil {
			log.Printf("Ignoring malformed overlay request: %v", err)
			continue
		}

		switch req.Type {
		case RequestReload:
			err := cmds.Reload()
			if err != nil {
				log.Printf("Overlay requested reload: %v", err)
			}
			c.hub.Send(c, NewReplyMessage(TypeReloaded, err))
		case RequestBindings:
			c.hub.Send(c, cmds.Bindings())
		default:
			log.Printf("Unknown overlay request %q", req.Type)
		}
	}
}
