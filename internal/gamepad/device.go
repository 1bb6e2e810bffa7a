package gamepad

import (
	"errors"
	"time"

	"github.com/soar/joyshop/internal/battery"
)

// ErrDisconnected is returned by a Device once the controller behind it is
// gone. It is the only error that ends a polling loop.
var ErrDisconnected = errors.New("gamepad: device disconnected")

// Device is one connected controller as seen by a polling loop.
type Device interface {
	Name() string
	// ReadSnapshot blocks until the next poll of the controller is available.
	ReadSnapshot() (Snapshot, error)
	SetIndicators(p battery.Pattern) error
	// PulseHaptic rumbles the controller and returns once d has elapsed.
	PulseHaptic(d time.Duration, intensity float64) error
	Close() error
}
