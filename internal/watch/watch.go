// Package watch is a terminal client for the overlay stream: it connects to a
// running instance and prints every activation as it happens.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/lxzan/gws"
	"github.com/pkg/errors"

	"github.com/soar/joyshop/internal/hub"
)

const closeTimeout = time.Second

// Printer formats overlay messages as terminal lines.
type Printer struct {
	gws.BuiltinEventHandler

	mu      sync.Mutex
	out     io.Writer
	devices string
	err     error
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) OnOpen(socket *gws.Conn) {
	p.printf("connected")
}

func (p *Printer) OnClose(socket *gws.Conn, err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *Printer) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	var msg hub.WSMessage
	if err := json.Unmarshal(message.Bytes(), &msg); err != nil {
		p.printf("bad message: %v", err)
		return
	}
	p.Handle(msg)
}

// Handle prints one message. Status messages are only printed when the
// device list changed.
func (p *Printer) Handle(msg hub.WSMessage) {
	switch msg.Type {
	case hub.TypeActivation:
		p.printf("%s", msg.Name)
	case hub.TypeStatus:
		devices := strings.Join(msg.Devices, ", ")
		p.mu.Lock()
		changed := devices != p.devices
		p.devices = devices
		p.mu.Unlock()
		if !changed {
			return
		}
		if devices == "" {
			devices = "none"
		}
		p.printf("controllers: %s", devices)
	case hub.TypeBindings:
		p.printf("bindings loaded (%d controls)", len(msg.Bindings))
	case hub.TypeReloaded:
		p.printf("bindings reloaded")
	case hub.TypeError:
		p.printf("error: %s", msg.Error)
	}
}

func (p *Printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// URL turns a listen address into the stream endpoint.
func URL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "ws://" + addr + "/ws"
}

// Run prints the stream at url until ctx is cancelled or the server goes
// away.
func Run(ctx context.Context, url string, out io.Writer) error {
	p := NewPrinter(out)
	socket, _, err := gws.NewClient(p, &gws.ClientOption{Addr: url})
	if err != nil {
		return errors.Wrapf(err, "connect %s", url)
	}

	done := make(chan struct{})
	go func() {
		socket.ReadLoop()
		close(done)
	}()

	select {
	case <-ctx.Done():
		socket.WriteClose(1000, nil)
		select {
		case <-done:
		case <-time.After(closeTimeout):
			socket.NetConn().Close()
			<-done
		}
		return nil
	case <-done:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Wrap(p.err, "stream closed")
}
