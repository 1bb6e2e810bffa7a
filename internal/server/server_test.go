package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gorilla/websocket"

	"github.com/soar/joyshop/internal/binding"
	"github.com/soar/joyshop/internal/hub"
)

type staticDevices []string

func (d staticDevices) Connected() []string { return d }

type stubReloader struct{ err error }

func (r stubReloader) Reload() error { return r.err }

var testFrontend = fstest.MapFS{
	"index.html": {Data: []byte("<!DOCTYPE html>\n<html>\n  <head>\n    <title>overlay</title>\n  </head>\n  <body>\n    <div id=\"toast\">   </div>\n  </body>\n</html>\n")},
	"app.js":     {Data: []byte("function show( name ) {\n  // toast\n  return name;\n}\n")},
	"style.css":  {Data: []byte("body {\n  margin : 0 ;\n}\n")},
}

func newTestServer(t *testing.T, reloadErr error) (*httptest.Server, chan<- string, *hub.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub()
	go h.Run(ctx)

	activations := make(chan string, 8)
	store := binding.NewStore(binding.Default())
	b := hub.NewBroadcaster(h, activations, staticDevices{"Joy-Con (L)"}, store, stubReloader{reloadErr})
	go b.Run(ctx)

	srv, err := New(h, b, staticDevices{"Joy-Con (L)"}, testFrontend, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		close(activations)
	})
	return ts, activations, h
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestStaticAssetsAreMinified(t *testing.T) {
	ts, _, _ := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
	if strings.Contains(body, "\n  ") {
		t.Errorf("index.html not minified: %q", body)
	}

	_, js := get(t, ts.URL+"/app.js")
	if strings.Contains(js, "// toast") {
		t.Errorf("app.js not minified: %q", js)
	}
	_, css := get(t, ts.URL+"/style.css")
	if strings.Contains(css, "\n") || !strings.Contains(css, "margin:0") {
		t.Errorf("style.css = %q", css)
	}

	if resp, _ := get(t, ts.URL+"/missing.png"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /missing.png = %d", resp.StatusCode)
	}
}

func TestAPI(t *testing.T) {
	ts, _, _ := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/api/devices")
	var devices []string
	if err := json.Unmarshal([]byte(body), &devices); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/devices = %d %s", resp.StatusCode, body)
	}
	if len(devices) != 1 || devices[0] != "Joy-Con (L)" {
		t.Errorf("devices = %v", devices)
	}

	_, body = get(t, ts.URL+"/api/bindings")
	var entries []binding.Entry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != int(binding.ControlCount) || entries[binding.LeftZL].Name != "Eraser" {
		t.Errorf("bindings = %v", entries)
	}

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("POST /api/reload = %d", resp.StatusCode)
	}
}

func TestReloadFailure(t *testing.T) {
	ts, _, _ := newTestServer(t, errors.New("unknown control \"turbo\""))

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || !strings.Contains(body["error"], "turbo") {
		t.Errorf("body = %v, %v", body, err)
	}
}

func TestWebSocketStream(t *testing.T) {
	ts, activations, h := newTestServer(t, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	read := func() hub.WSMessage {
		var msg hub.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		return msg
	}

	if msg := read(); msg.Type != hub.TypeStatus {
		t.Fatalf("first message = %+v, want status", msg)
	}
	if msg := read(); msg.Type != hub.TypeBindings {
		t.Fatalf("second message = %+v, want bindings", msg)
	}

	deadline := time.Now().Add(time.Second)
	for h.Count() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(time.Millisecond)
	}

	activations <- "Brush"
	if msg := read(); msg.Type != hub.TypeActivation || msg.Name != "Brush" {
		t.Fatalf("got %+v, want activation Brush", msg)
	}

	if err := conn.WriteJSON(hub.ClientMessage{Type: "reload"}); err != nil {
		t.Fatal(err)
	}
	for {
		msg := read()
		if msg.Type == hub.TypeReloaded {
			break
		}
		if msg.Type != hub.TypeStatus {
			t.Fatalf("unexpected reply %+v", msg)
		}
	}
}
