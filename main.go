package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/joyshop/internal/binding"
	"github.com/soar/joyshop/internal/config"
	"github.com/soar/joyshop/internal/console"
	"github.com/soar/joyshop/internal/dispatch"
	"github.com/soar/joyshop/internal/engine"
	"github.com/soar/joyshop/internal/gamepad"
	"github.com/soar/joyshop/internal/gamepad/sdlreader"
	"github.com/soar/joyshop/internal/hub"
	"github.com/soar/joyshop/internal/keys"
	"github.com/soar/joyshop/internal/server"
	"github.com/soar/joyshop/internal/tray"
	"github.com/soar/joyshop/internal/watch"
)

const (
	activationBuffer = 64
	loopDrainTimeout = 2 * time.Second
)

// On Windows os.Interrupt is sent when Ctrl+C is pressed; on Unix it is SIGINT.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.File != "" {
		log.Printf("Using config file %s", cfg.File)
	}

	if cfg.Watch {
		runWatch(cfg)
		return
	}

	// A double-clicked Windows build has no terminal to print to
	if console.Detached() {
		cfg.Tray = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	interrupted := make(chan struct{})
	reregisterInterrupt := console.NotifyInterrupt(interrupted)

	injector, closeInjector := newInjector(cfg)
	defer closeInjector.Close()

	// Binding table, reloaded on file change
	store := binding.NewStore(nil)
	loader := binding.NewLoader(cfg.Bindings, store)
	if err := loader.Load(); err != nil {
		log.Fatalf("Failed to load bindings: %v", err)
	}
	loader.Watch()
	log.Printf("Bindings loaded from %s", loader.Path())

	// Activation names for the overlay; nil disables publishing
	var activations chan string
	if cfg.Overlay {
		activations = make(chan string, activationBuffer)
	}
	dispatcher := dispatch.New(injector, activations)
	dispatcher.SetVerbose(cfg.Verbose)

	// One polling loop per controller
	var loops sync.WaitGroup
	reader := sdlreader.New(func(d gamepad.Device) {
		loop := engine.NewLoop(d, store, dispatcher, cfg.LoopOptions())
		loops.Add(1)
		go func() {
			defer loops.Done()
			if err := loop.Run(); err != nil {
				log.Printf("%s: polling stopped: %v", d.Name(), err)
			}
		}()
	})
	reader.SetPollInterval(cfg.PollInterval)
	reader.SetVerbose(cfg.Verbose)
	reader.SetOnInit(reregisterInterrupt)

	h := hub.NewHub()
	go h.Run(ctx)

	broadcaster := hub.NewBroadcaster(h, activations, reader, store, loader)
	loader.OnReload(broadcaster.NotifyBindings)
	go broadcaster.Run(ctx)

	page, err := overlayFS()
	if err != nil {
		log.Fatalf("Failed to open overlay page: %v", err)
	}
	srv, err := server.New(h, broadcaster, reader, page, cfg.Listen)
	if err != nil {
		log.Fatalf("Failed to prepare overlay: %v", err)
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := overlayURL(cfg.Listen)
	log.Printf("joyshop started: %s", url)

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	var t *tray.Tray
	if cfg.Tray {
		trayURL := url
		if !cfg.Overlay {
			trayURL = ""
		}
		t = tray.New(tray.Options{
			OverlayURL: trayURL,
			Devices:    reader,
			Reload:     loader.Reload,
			Exit:       func() { close(shutdownRequested) },
		})
		go t.Run(tray.GetIcon())
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// reader.Run locks its goroutine to an OS thread for SDL
	readerDone := make(chan error, 1)
	go func() {
		readerDone <- reader.Run(ctx)
	}()

	readerStopped := false
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-interrupted:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
	case err := <-readerDone:
		log.Printf("Controller reader stopped: %v", err)
		readerStopped = true
	}
	cancel()

	// The reader disconnects every device on exit, which ends each loop
	// after it has released its keys.
	if !readerStopped {
		if err := <-readerDone; err != nil {
			log.Printf("Controller reader error: %v", err)
		}
	}
	drained := make(chan struct{})
	go func() {
		loops.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(loopDrainTimeout):
		log.Println("Timed out waiting for polling loops")
	}

	if t != nil {
		t.Quit()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("joyshop stopped")
}

// newInjector returns the platform injector (uinput or SendInput), or a
// logging one for --dry-run and when the platform backend is unavailable.
func newInjector(cfg *config.Config) (keys.Injector, io.Closer) {
	if cfg.DryRun {
		inj := keys.NewLogInjector(nil)
		return inj, inj
	}
	inj, err := keys.NewInjector("joyshop virtual keyboard")
	if err != nil {
		log.Printf("Key injection unavailable, logging key events instead: %v", err)
		fallback := keys.NewLogInjector(nil)
		return fallback, fallback
	}
	return inj, inj
}

func overlayURL(listen string) string {
	if strings.HasPrefix(listen, ":") {
		listen = "localhost" + listen
	}
	return "http://" + listen
}

func runWatch(cfg *config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	url := watch.URL(cfg.Listen)
	log.Printf("Watching %s", url)
	if err := watch.Run(ctx, url, os.Stdout); err != nil {
		log.Fatalf("Watch failed: %v", err)
	}
}
