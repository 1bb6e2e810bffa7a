package watch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/soar/joyshop/internal/hub"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHandle(t *testing.T) {
	var out syncBuffer
	p := NewPrinter(&out)

	p.Handle(hub.WSMessage{Type: hub.TypeStatus, Devices: []string{"Joy-Con (L)"}})
	p.Handle(hub.WSMessage{Type: hub.TypeStatus, Devices: []string{"Joy-Con (L)"}})
	p.Handle(hub.WSMessage{Type: hub.TypeActivation, Name: "Eraser"})
	p.Handle(hub.WSMessage{Type: hub.TypeError, Error: "bad file"})
	p.Handle(hub.WSMessage{Type: hub.TypeStatus})

	got := out.String()
	if n := strings.Count(got, "controllers: Joy-Con (L)"); n != 1 {
		t.Errorf("device line printed %d times:\n%s", n, got)
	}
	for _, want := range []string{"Eraser\n", "error: bad file\n", "controllers: none\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "ws://127.0.0.1:8080/ws",
		"127.0.0.1:9000": "ws://127.0.0.1:9000/ws",
		"host.lan:80":    "ws://host.lan:80/ws",
	}
	for addr, want := range tests {
		if got := URL(addr); got != want {
			t.Errorf("URL(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestRunPrintsStream(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteJSON(hub.NewActivationMessage(1, "Undo"))
		conn.WriteJSON(hub.NewActivationMessage(2, "Redo"))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer ts.Close()

	var out syncBuffer
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	// The server closing the stream ends Run; the close reason is not checked.
	_ = Run(context.Background(), url, &out)

	got := out.String()
	if !strings.Contains(got, "Undo\n") || !strings.Contains(got, "Redo\n") {
		t.Errorf("output = %q", got)
	}
	if strings.Index(got, "Undo") > strings.Index(got, "Redo") {
		t.Errorf("activations out of order: %q", got)
	}
}
