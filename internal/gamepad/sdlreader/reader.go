// Package sdlreader is the SDL3 transport: it owns the joystick subsystem and
// hands each connected controller out as a gamepad.Device. Importing it loads
// libSDL3, so only the binary's main package does.
package sdlreader

import (
	"context"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"

	"github.com/soar/joyshop/internal/battery"
	"github.com/soar/joyshop/internal/gamepad"
)

const (
	defaultPollInterval = 16 * time.Millisecond // ~60Hz
	snapshotBuffer      = 64

	// Flashing indicators are emulated: SDL only exposes steady player lights.
	blinkPhase = 500 * time.Millisecond
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
	device   *sdlDevice
}

// Reader pumps SDL events on a locked OS thread, samples every open joystick
// once per poll interval and hands each controller to onConnect.
type Reader struct {
	onConnect    func(gamepad.Device)
	onInit       func()
	pollInterval time.Duration
	verbose      bool

	joysticks map[sdl.JoystickID]*joystickInfo
	mu        sync.RWMutex
	names     map[sdl.JoystickID]string
}

// New creates a reader that calls onConnect, on the SDL thread, for every
// controller that shows up. onConnect must not block.
func New(onConnect func(gamepad.Device)) *Reader {
	return &Reader{
		onConnect:    onConnect,
		pollInterval: defaultPollInterval,
		joysticks:    make(map[sdl.JoystickID]*joystickInfo),
		names:        make(map[sdl.JoystickID]string),
	}
}

func (r *Reader) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.pollInterval = d
	}
}

// SetOnInit registers fn to run on the SDL thread right after SDL starts.
func (r *Reader) SetOnInit(fn func()) {
	r.onInit = fn
}

func (r *Reader) SetVerbose(v bool) {
	r.verbose = v
}

// Connected returns the names of the currently open controllers.
func (r *Reader) Connected() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.names))
	for _, n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run initializes SDL and runs the event+polling loop on the current thread
// until ctx is cancelled. Every device handed out is disconnected on return.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")
	if r.onInit != nil {
		r.onInit()
	}

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.pollState(time.Now())
		sdl.DelayNS(uint64(r.pollInterval.Nanoseconds()))
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			if r.verbose {
				be := event.JButton()
				log.Printf("[DEBUG] Button DOWN: index=%d joystick=%d", be.Button, be.Which)
			}

		case sdl.EventJoystickButtonUp:
			if r.verbose {
				be := event.JButton()
				log.Printf("[DEBUG] Button UP:   index=%d joystick=%d", be.Button, be.Which)
			}
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := gamepad.GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
		device:   newSDLDevice(name, js),
	}
	r.joysticks[jsID] = info

	r.mu.Lock()
	r.names[jsID] = name
	r.mu.Unlock()

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s axes=%d buttons=%d hats=%d",
		name, vendorID, productID, mapping.Name,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickHats(js))

	if r.onConnect != nil {
		r.onConnect(info.device)
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: %s", info.name)
	r.release(info)
}

func (r *Reader) release(info *joystickInfo) {
	info.device.detach()
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, info.id)

	r.mu.Lock()
	delete(r.names, info.id)
	r.mu.Unlock()
}

func (r *Reader) closeAll() {
	for _, info := range r.joysticks {
		r.release(info)
	}
}

func (r *Reader) pollState(now time.Time) {
	on := now.UnixMilli()/blinkPhase.Milliseconds()%2 == 0
	for _, info := range r.joysticks {
		if !sdl.JoystickConnected(info.joystick) {
			continue
		}
		info.device.feed.Push(r.sample(info))
		info.device.blink(on)
	}
}

func (r *Reader) sample(info *joystickInfo) gamepad.Snapshot {
	js := info.joystick
	mapping := info.mapping

	var percent int32 = -1
	sdl.GetJoystickPowerInfo(js, &percent)
	state := gamepad.IdleSnapshot(battery.FromPercent(int(percent)))

	numAxes := sdl.GetNumJoystickAxes(js)
	for _, am := range mapping.Axes {
		if am.Index >= numAxes {
			continue
		}
		am.Apply(&state, sdl.GetJoystickAxis(js, am.Index))
	}

	numButtons := sdl.GetNumJoystickButtons(js)
	for _, bm := range mapping.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		bm.Apply(&state, sdl.GetJoystickButton(js, bm.Index))
	}

	if mapping.HasHat && sdl.GetNumJoystickHats(js) > 0 {
		gamepad.ApplyHat(&state, sdl.GetJoystickHat(js, 0))
	}

	return state
}

// sdlDevice is the Device handed to a polling loop. Snapshots arrive from the
// SDL thread; rumble and player lights are called from the loop goroutine,
// which SDL3 allows since its joystick calls take the joystick lock.
type sdlDevice struct {
	name string
	feed *gamepad.Feed

	mu     sync.Mutex
	js     *sdl.Joystick // nil once the reader has released it
	lights battery.Pattern
	shown  int32
}

func newSDLDevice(name string, js *sdl.Joystick) *sdlDevice {
	return &sdlDevice{
		name:  name,
		feed:  gamepad.NewFeed(name, snapshotBuffer),
		js:    js,
		shown: -2,
	}
}

func (d *sdlDevice) Name() string {
	return d.name
}

func (d *sdlDevice) ReadSnapshot() (gamepad.Snapshot, error) {
	return d.feed.Next()
}

// SetIndicators shows the pattern through SDL's player index: the number of
// lit slots becomes the player number and no lit slots turns the lights off.
// Flashing slots are blinked by the reader.
func (d *sdlDevice) SetIndicators(p battery.Pattern) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.js == nil {
		return gamepad.ErrDisconnected
	}
	d.lights = p
	return d.showLocked(p.Lit(true))
}

// blink runs on the SDL thread every poll.
func (d *sdlDevice) blink(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.js == nil || !d.lights.Blinks() {
		return
	}
	// Failures already surfaced through SetIndicators.
	d.showLocked(d.lights.Lit(on))
}

func (d *sdlDevice) showLocked(lit battery.Slots) error {
	index := int32(lit.Count() - 1)
	if index == d.shown {
		return nil
	}
	d.shown = index
	if !sdl.SetJoystickPlayerIndex(d.js, index) {
		return errors.Errorf("set player index on %s: %s", d.name, sdl.GetError())
	}
	return nil
}

func (d *sdlDevice) PulseHaptic(dur time.Duration, intensity float64) error {
	if intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	strength := uint16(intensity * 0xFFFF)

	d.mu.Lock()
	if d.js == nil {
		d.mu.Unlock()
		return gamepad.ErrDisconnected
	}
	ok := sdl.RumbleJoystick(d.js, strength, strength, uint32(dur.Milliseconds()))
	d.mu.Unlock()

	if !ok {
		return errors.Errorf("rumble on %s: %s", d.name, sdl.GetError())
	}
	time.Sleep(dur)
	return nil
}

// Close stops any rumble still running. The joystick handle itself belongs
// to the reader and is closed on the SDL thread.
func (d *sdlDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.js != nil {
		sdl.RumbleJoystick(d.js, 0, 0, 0)
	}
	return nil
}

// detach runs on the SDL thread right before the joystick is closed.
func (d *sdlDevice) detach() {
	d.mu.Lock()
	d.js = nil
	d.mu.Unlock()
	d.feed.Close()
}
