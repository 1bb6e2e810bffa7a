// Package engine runs the per-controller polling loop that turns snapshots
// into key events, haptic pulses and indicator updates.
package engine

import (
	"errors"
	"log"
	"time"

	"github.com/soar/joyshop/internal/battery"
	"github.com/soar/joyshop/internal/binding"
	"github.com/soar/joyshop/internal/gamepad"
)

const (
	DefaultHapticDuration  = 30 * time.Millisecond
	DefaultHapticIntensity = 1.0

	readRetryDelay = 100 * time.Millisecond
)

var sides = [...]gamepad.Side{gamepad.SideLeft, gamepad.SideRight}

// Dispatcher executes a binding. *dispatch.Dispatcher implements it.
type Dispatcher interface {
	Dispatch(b binding.Binding, active bool)
}

// Options tunes a Loop.
type Options struct {
	Classifier      gamepad.Classifier
	HapticDuration  time.Duration
	HapticIntensity float64
	Verbose         bool
}

func DefaultOptions() Options {
	return Options{
		Classifier:      gamepad.DefaultClassifier(),
		HapticDuration:  DefaultHapticDuration,
		HapticIntensity: DefaultHapticIntensity,
	}
}

// Loop polls one device. Loops for different devices share only the Store
// and the Dispatcher.
type Loop struct {
	device     gamepad.Device
	store      *binding.Store
	dispatcher Dispatcher
	opts       Options
	retryDelay time.Duration

	started bool
	prev    gamepad.Snapshot
	zones   [2]gamepad.Zone
	// held remembers the binding each control activated, so its release
	// matches the press even if the table was replaced in between.
	held [binding.ControlCount]binding.Binding
}

func NewLoop(device gamepad.Device, store *binding.Store, d Dispatcher, opts Options) *Loop {
	return &Loop{
		device:     device,
		store:      store,
		dispatcher: d,
		opts:       opts,
		retryDelay: readRetryDelay,
		zones:      [2]gamepad.Zone{gamepad.Neutral, gamepad.Neutral},
	}
}

// Run polls until the device disconnects. Before returning it releases every
// key the loop still holds, clears the indicators and closes the device.
func (l *Loop) Run() error {
	defer l.shutdown()

	log.Printf("%s: polling started", l.device.Name())
	for {
		s, err := l.read()
		if err != nil {
			if errors.Is(err, gamepad.ErrDisconnected) {
				log.Printf("%s: disconnected", l.device.Name())
				return nil
			}
			return err
		}
		l.Step(s)
	}
}

func (l *Loop) read() (gamepad.Snapshot, error) {
	for {
		s, err := l.device.ReadSnapshot()
		if err == nil || errors.Is(err, gamepad.ErrDisconnected) {
			return s, err
		}
		log.Printf("%s: read failed, retrying: %v", l.device.Name(), err)
		time.Sleep(l.retryDelay)
	}
}

// Step runs one poll iteration against curr. The first snapshot only sets
// the baseline: it pushes the battery pattern and records the stick zones
// without dispatching anything.
func (l *Loop) Step(curr gamepad.Snapshot) {
	if !l.started {
		l.prime(curr)
		return
	}

	table := l.store.Load()
	if table == nil {
		return
	}

	if curr.Battery != l.prev.Battery {
		l.setIndicators(curr.Battery)
	}

	for _, c := range binding.ButtonControls {
		side, b := c.Side(), c.Button()
		switch {
		case gamepad.IsButtonDown(l.prev, curr, side, b):
			l.activate(table, c)
		case gamepad.IsButtonUp(l.prev, curr, side, b):
			l.deactivate(c)
		}
	}

	for _, side := range sides {
		old := l.zones[side]
		z := l.opts.Classifier.Classify(old, curr.Stick(side))
		if z == old {
			continue
		}
		if l.opts.Verbose {
			log.Printf("[DEBUG] %s: %s stick zone %d -> %d", l.device.Name(), side, old, z)
		}
		if z.Active() {
			l.pulse()
		}
		if c, ok := binding.ZoneControl(side, old); ok {
			l.deactivate(c)
		}
		if c, ok := binding.ZoneControl(side, z); ok {
			l.activate(table, c)
		}
		l.zones[side] = z
	}

	l.prev = curr
}

func (l *Loop) prime(first gamepad.Snapshot) {
	l.started = true
	l.prev = first
	for _, side := range sides {
		l.zones[side] = l.opts.Classifier.Classify(gamepad.Neutral, first.Stick(side))
	}
	l.setIndicators(first.Battery)
}

func (l *Loop) activate(table *binding.Table, c binding.Control) {
	b := table.Get(c)
	if b.IsNone() {
		return
	}
	l.held[c] = b
	l.dispatcher.Dispatch(b, true)
}

func (l *Loop) deactivate(c binding.Control) {
	b := l.held[c]
	if b.IsNone() {
		return
	}
	l.held[c] = binding.Binding{}
	l.dispatcher.Dispatch(b, false)
}

func (l *Loop) pulse() {
	if err := l.device.PulseHaptic(l.opts.HapticDuration, l.opts.HapticIntensity); err != nil {
		log.Printf("%s: haptic pulse failed: %v", l.device.Name(), err)
	}
}

func (l *Loop) setIndicators(level battery.Level) {
	p := battery.Indicators(level)
	if l.opts.Verbose {
		log.Printf("[DEBUG] %s: battery %s, indicators %s", l.device.Name(), level, p)
	}
	if err := l.device.SetIndicators(p); err != nil {
		log.Printf("%s: set indicators failed: %v", l.device.Name(), err)
	}
}

func (l *Loop) shutdown() {
	for c := binding.Control(0); c < binding.ControlCount; c++ {
		l.deactivate(c)
	}
	if err := l.device.SetIndicators(battery.Pattern{}); err != nil && !errors.Is(err, gamepad.ErrDisconnected) {
		log.Printf("%s: clear indicators failed: %v", l.device.Name(), err)
	}
	if err := l.device.Close(); err != nil && !errors.Is(err, gamepad.ErrDisconnected) {
		log.Printf("%s: close failed: %v", l.device.Name(), err)
	}
}
