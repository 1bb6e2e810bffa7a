// Package dispatch turns binding activations into key events and overlay
// notifications.
package dispatch

import (
	"log"

	"github.com/soar/joyshop/internal/binding"
	"github.com/soar/joyshop/internal/keys"
)

// Dispatcher executes bindings against an Injector. It holds no state of its
// own, so one Dispatcher may serve every polling loop.
type Dispatcher struct {
	injector keys.Injector
	observer chan<- string
	verbose  bool
}

// New returns a Dispatcher publishing activation names to observer. A nil
// observer disables publishing.
func New(injector keys.Injector, observer chan<- string) *Dispatcher {
	return &Dispatcher{injector: injector, observer: observer}
}

// SetVerbose enables a log line per activation and release.
func (d *Dispatcher) SetVerbose(v bool) {
	d.verbose = v
}

// Dispatch activates b when active is true and deactivates it otherwise.
func (d *Dispatcher) Dispatch(b binding.Binding, active bool) {
	switch b.Action {
	case binding.ActionHold:
		if active {
			d.pressModifiers(b.KeyCombination)
			d.press(b.Key)
			d.debug("[Hold] %s", b.Name)
			d.publish(b.Name)
		} else {
			d.release(b.Key)
			d.releaseModifiers(b.KeyCombination)
			d.debug("[Release] %s", b.Name)
		}
	case binding.ActionClick:
		if !active {
			return
		}
		d.pressModifiers(b.KeyCombination)
		d.press(b.Key)
		d.release(b.Key)
		d.releaseModifiers(b.KeyCombination)
		d.debug("[Click] %s", b.Name)
		d.publish(b.Name)
	}
}

// Modifiers go down and come up in the same order: Alt, Shift, Ctrl.
func (d *Dispatcher) pressModifiers(kc binding.KeyCombination) {
	if kc.Alt {
		d.press(keys.Alt)
	}
	if kc.Shift {
		d.press(keys.Shift)
	}
	if kc.Ctrl {
		d.press(keys.Control)
	}
}

func (d *Dispatcher) releaseModifiers(kc binding.KeyCombination) {
	if kc.Alt {
		d.release(keys.Alt)
	}
	if kc.Shift {
		d.release(keys.Shift)
	}
	if kc.Ctrl {
		d.release(keys.Control)
	}
}

func (d *Dispatcher) press(k keys.VirtualKey) {
	if k == keys.None {
		return
	}
	if err := d.injector.Press(k); err != nil {
		log.Printf("Failed to press %s: %v", k, err)
	}
}

func (d *Dispatcher) release(k keys.VirtualKey) {
	if k == keys.None {
		return
	}
	if err := d.injector.Release(k); err != nil {
		log.Printf("Failed to release %s: %v", k, err)
	}
}

func (d *Dispatcher) publish(name string) {
	select {
	case d.observer <- name:
	default:
	}
}

func (d *Dispatcher) debug(format string, args ...any) {
	if d.verbose {
		log.Printf("[DEBUG] "+format, args...)
	}
}
