package gamepad

import (
	"fmt"

	"github.com/soar/joyshop/internal/battery"
)

// Side identifies one half of a controller. A Pro Controller reports both
// halves; a single Joy-Con only ever reports its own.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Button is a physical button. SL and SR exist on both halves and are told
// apart by the Side they are queried with.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonL
	ButtonZL
	ButtonSL
	ButtonSR
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonR
	ButtonZR
	ButtonMinus
	ButtonPlus
	ButtonLStick
	ButtonRStick
	ButtonHome
	ButtonCapture

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonUp:      "up",
	ButtonDown:    "down",
	ButtonLeft:    "left",
	ButtonRight:   "right",
	ButtonL:       "l",
	ButtonZL:      "zl",
	ButtonSL:      "sl",
	ButtonSR:      "sr",
	ButtonA:       "a",
	ButtonB:       "b",
	ButtonX:       "x",
	ButtonY:       "y",
	ButtonR:       "r",
	ButtonZR:      "zr",
	ButtonMinus:   "minus",
	ButtonPlus:    "plus",
	ButtonLStick:  "lstick",
	ButtonRStick:  "rstick",
	ButtonHome:    "home",
	ButtonCapture: "capture",
}

func (b Button) String() string {
	if b < buttonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// IsShared reports whether the button belongs to the shared set rather than
// to one side's own set.
func (b Button) IsShared() bool {
	switch b {
	case ButtonMinus, ButtonPlus, ButtonLStick, ButtonRStick, ButtonHome, ButtonCapture:
		return true
	}
	return false
}

// ButtonSet is a bitmask of pressed buttons.
type ButtonSet uint32

func (s ButtonSet) Has(b Button) bool {
	return s&(1<<b) != 0
}

func (s ButtonSet) With(b Button) ButtonSet {
	return s | 1<<b
}

// StickCenter is the raw reading of a stick at rest on both axes.
const StickCenter = 4096 / 2

// StickReading is a raw analog stick position in 12-bit sub-pixel units,
// 0..4095 on each axis with StickCenter at rest.
type StickReading struct {
	Horizontal uint16 `json:"horizontal"`
	Vertical   uint16 `json:"vertical"`
}

// CenteredStick is the reading of a stick that is absent or untouched.
var CenteredStick = StickReading{Horizontal: StickCenter, Vertical: StickCenter}

// Snapshot is the full controller state at one polling instant. Button sets
// are partitioned by owner: Left and Right hold the buttons only that half
// has, Shared holds the ones that register regardless of which half is asked.
type Snapshot struct {
	Left    ButtonSet
	Right   ButtonSet
	Shared  ButtonSet
	Sticks  [2]StickReading // indexed by Side
	Battery battery.Level
}

// Buttons returns the set owned by side.
func (s Snapshot) Buttons(side Side) ButtonSet {
	if side == SideRight {
		return s.Right
	}
	return s.Left
}

// Stick returns the reading of the stick on side.
func (s Snapshot) Stick(side Side) StickReading {
	return s.Sticks[side]
}

// Press returns a copy of s with b pressed on side, or in the shared set
// when b is a shared button.
func (s Snapshot) Press(side Side, b Button) Snapshot {
	switch {
	case b.IsShared():
		s.Shared = s.Shared.With(b)
	case side == SideRight:
		s.Right = s.Right.With(b)
	default:
		s.Left = s.Left.With(b)
	}
	return s
}

// IdleSnapshot returns a snapshot with nothing pressed, both sticks centred
// and the given battery level.
func IdleSnapshot(level battery.Level) Snapshot {
	return Snapshot{
		Sticks:  [2]StickReading{CenteredStick, CenteredStick},
		Battery: level,
	}
}
