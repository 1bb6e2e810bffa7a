// Package tray puts joyshop in the notification area: open the overlay,
// reload bindings, see which controllers are attached, quit.
package tray

import (
	"log"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/systray"
)

const deviceRefresh = 2 * time.Second

// DeviceLister reports the connected controllers.
type DeviceLister interface {
	Connected() []string
}

// Options wires the menu to the rest of the program.
type Options struct {
	// OverlayURL is opened by "Open overlay". Empty hides the item.
	OverlayURL string
	Devices    DeviceLister
	Reload     func() error
	// Exit runs once when "Exit" is clicked.
	Exit func()
}

type Tray struct {
	opts     Options
	exitOnce sync.Once
	quitting atomic.Bool

	devices *systray.MenuItem
	open    *systray.MenuItem
	reload  *systray.MenuItem
	exit    *systray.MenuItem
}

func New(opts Options) *Tray {
	return &Tray{opts: opts}
}

// Run shows the icon and blocks until Quit.
func (t *Tray) Run(icon []byte) {
	systray.Run(func() { t.build(icon) }, func() {
		t.quitting.Store(true)
		log.Println("System tray exiting")
	})
}

// Quit removes the icon. Safe to call more than once.
func (t *Tray) Quit() {
	t.quitting.Store(true)
	systray.Quit()
}

func (t *Tray) build(icon []byte) {
	if icon != nil {
		systray.SetIcon(icon)
	}
	systray.SetTitle("joyshop")
	systray.SetTooltip("joyshop - controller shortcuts")

	t.devices = systray.AddMenuItem(devicesTitle(nil), "Connected controllers")
	t.devices.Disable()
	systray.AddSeparator()
	t.open = systray.AddMenuItem("Open overlay", "Show activations in the browser")
	if t.opts.OverlayURL == "" {
		t.open.Hide()
	}
	t.reload = systray.AddMenuItem("Reload bindings", "Re-read the binding file")
	systray.AddSeparator()
	t.exit = systray.AddMenuItem("Exit", "Quit joyshop")

	go t.loop()
	log.Println("System tray initialized")
}

func (t *Tray) loop() {
	ticker := time.NewTicker(deviceRefresh)
	defer ticker.Stop()

	shown := ""
	for {
		select {
		case <-ticker.C:
			if t.opts.Devices == nil {
				continue
			}
			if title := devicesTitle(t.opts.Devices.Connected()); title != shown {
				t.devices.SetTitle(title)
				shown = title
			}

		case <-t.open.ClickedCh:
			if !t.quitting.Load() {
				openURL(t.opts.OverlayURL)
			}

		case <-t.reload.ClickedCh:
			if err := t.opts.Reload(); err != nil {
				log.Printf("Bindings reload failed, keeping previous table: %v", err)
				t.reload.SetTooltip("Last reload failed: " + err.Error())
			} else {
				t.reload.SetTooltip("Re-read the binding file")
			}

		case <-t.exit.ClickedCh:
			if t.quitting.CompareAndSwap(false, true) {
				t.exitOnce.Do(t.opts.Exit)
				systray.Quit()
			}
			return
		}
	}
}

func devicesTitle(names []string) string {
	if len(names) == 0 {
		return "No controller connected"
	}
	return "Connected: " + strings.Join(names, ", ")
}

func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
