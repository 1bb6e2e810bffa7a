package server

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/soar/joyshop/internal/hub"
)

const readHeaderTimeout = 5 * time.Second

// Server serves the overlay page, its WebSocket stream and a small JSON API.
type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	devices     hub.DeviceLister
	page        *assets
	srv         *http.Server
}

// New prepares a server for the overlay page in frontendFS. The page is
// minified here, so a broken asset fails at startup.
func New(h *hub.Hub, b *hub.Broadcaster, devices hub.DeviceLister, frontendFS fs.FS, addr string) (*Server, error) {
	page, err := loadAssets(frontendFS)
	if err != nil {
		return nil, err
	}
	s := &Server{
		hub:         h,
		broadcaster: b,
		devices:     devices,
		page:        page,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s, nil
}

// Handler returns the routes served by ListenAndServe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster))
	mux.HandleFunc("GET /api/bindings", handleBindings(s.broadcaster))
	mux.HandleFunc("POST /api/reload", handleReload(s.broadcaster))
	mux.HandleFunc("GET /api/devices", handleDevices(s.devices))

	mux.Handle("/", s.page)

	return mux
}

// ListenAndServe blocks until Shutdown, returning http.ErrServerClosed then.
func (s *Server) ListenAndServe() error {
	log.Printf("HTTP server listening on %s", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
// Hijacked WebSocket connections are not tracked; the hub closes them.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.srv.Shutdown(ctx)
}
