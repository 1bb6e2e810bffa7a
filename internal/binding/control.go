package binding

import (
	"fmt"

	"github.com/soar/joyshop/internal/gamepad"
)

// ZonesPerStick is the number of stick zones that carry bindings.
const ZonesPerStick = 6

// Control is one bindable physical control: a button, a stick click or a
// stick zone.
type Control int

const (
	LeftZL Control = iota
	LeftL
	Minus
	LeftStick
	LeftStickTopRight
	LeftStickTopCenter
	LeftStickTopLeft
	LeftStickBottomLeft
	LeftStickBottomCenter
	LeftStickBottomRight
	Up
	Down
	Left
	Right
	Capture
	LeftSL
	LeftSR

	RightZR
	RightR
	Plus
	RightStick
	RightStickTopRight
	RightStickTopCenter
	RightStickTopLeft
	RightStickBottomLeft
	RightStickBottomCenter
	RightStickBottomRight
	A
	B
	X
	Y
	Home
	RightSL
	RightSR

	ControlCount
)

type controlInfo struct {
	name   string
	side   gamepad.Side
	button gamepad.Button
	zone   gamepad.Zone // Neutral for buttons
}

func button(name string, side gamepad.Side, b gamepad.Button) controlInfo {
	return controlInfo{name: name, side: side, button: b, zone: gamepad.Neutral}
}

func zone(name string, side gamepad.Side, z gamepad.Zone) controlInfo {
	return controlInfo{name: name, side: side, zone: z}
}

// Zones run counter-clockwise from the right, so zone 0 is the top-right arc.
var controls = [ControlCount]controlInfo{
	LeftZL:                button("zl", gamepad.SideLeft, gamepad.ButtonZL),
	LeftL:                 button("l", gamepad.SideLeft, gamepad.ButtonL),
	Minus:                 button("minus", gamepad.SideLeft, gamepad.ButtonMinus),
	LeftStick:             button("left_stick", gamepad.SideLeft, gamepad.ButtonLStick),
	LeftStickTopRight:     zone("left_stick_top_right", gamepad.SideLeft, 0),
	LeftStickTopCenter:    zone("left_stick_top_center", gamepad.SideLeft, 1),
	LeftStickTopLeft:      zone("left_stick_top_left", gamepad.SideLeft, 2),
	LeftStickBottomLeft:   zone("left_stick_bottom_left", gamepad.SideLeft, 3),
	LeftStickBottomCenter: zone("left_stick_bottom_center", gamepad.SideLeft, 4),
	LeftStickBottomRight:  zone("left_stick_bottom_right", gamepad.SideLeft, 5),
	Up:                    button("up", gamepad.SideLeft, gamepad.ButtonUp),
	Down:                  button("down", gamepad.SideLeft, gamepad.ButtonDown),
	Left:                  button("left", gamepad.SideLeft, gamepad.ButtonLeft),
	Right:                 button("right", gamepad.SideLeft, gamepad.ButtonRight),
	Capture:               button("capture", gamepad.SideLeft, gamepad.ButtonCapture),
	LeftSL:                button("left_sl", gamepad.SideLeft, gamepad.ButtonSL),
	LeftSR:                button("left_sr", gamepad.SideLeft, gamepad.ButtonSR),

	RightZR:                button("zr", gamepad.SideRight, gamepad.ButtonZR),
	RightR:                 button("r", gamepad.SideRight, gamepad.ButtonR),
	Plus:                   button("plus", gamepad.SideRight, gamepad.ButtonPlus),
	RightStick:             button("right_stick", gamepad.SideRight, gamepad.ButtonRStick),
	RightStickTopRight:     zone("right_stick_top_right", gamepad.SideRight, 0),
	RightStickTopCenter:    zone("right_stick_top_center", gamepad.SideRight, 1),
	RightStickTopLeft:      zone("right_stick_top_left", gamepad.SideRight, 2),
	RightStickBottomLeft:   zone("right_stick_bottom_left", gamepad.SideRight, 3),
	RightStickBottomCenter: zone("right_stick_bottom_center", gamepad.SideRight, 4),
	RightStickBottomRight:  zone("right_stick_bottom_right", gamepad.SideRight, 5),
	A:                      button("a", gamepad.SideRight, gamepad.ButtonA),
	B:                      button("b", gamepad.SideRight, gamepad.ButtonB),
	X:                      button("x", gamepad.SideRight, gamepad.ButtonX),
	Y:                      button("y", gamepad.SideRight, gamepad.ButtonY),
	Home:                   button("home", gamepad.SideRight, gamepad.ButtonHome),
	RightSL:                button("right_sl", gamepad.SideRight, gamepad.ButtonSL),
	RightSR:                button("right_sr", gamepad.SideRight, gamepad.ButtonSR),
}

var controlsByName = func() map[string]Control {
	m := make(map[string]Control, ControlCount)
	for c := Control(0); c < ControlCount; c++ {
		m[controls[c].name] = c
	}
	return m
}()

var zoneControls = [2][ZonesPerStick]Control{
	gamepad.SideLeft: {
		LeftStickTopRight, LeftStickTopCenter, LeftStickTopLeft,
		LeftStickBottomLeft, LeftStickBottomCenter, LeftStickBottomRight,
	},
	gamepad.SideRight: {
		RightStickTopRight, RightStickTopCenter, RightStickTopLeft,
		RightStickBottomLeft, RightStickBottomCenter, RightStickBottomRight,
	},
}

// ButtonControls lists every button and stick-click control in table order.
var ButtonControls = func() []Control {
	var cs []Control
	for c := Control(0); c < ControlCount; c++ {
		if !c.IsZone() {
			cs = append(cs, c)
		}
	}
	return cs
}()

func (c Control) String() string {
	if c >= 0 && c < ControlCount {
		return controls[c].name
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

func (c Control) Side() gamepad.Side {
	return controls[c].side
}

// Button returns the physical button behind a button control.
func (c Control) Button() gamepad.Button {
	return controls[c].button
}

func (c Control) IsZone() bool {
	return controls[c].zone.Active()
}

// Zone returns the stick zone behind a zone control, Neutral otherwise.
func (c Control) Zone() gamepad.Zone {
	return controls[c].zone
}

// ZoneControl returns the control bound to zone z of side's stick.
func ZoneControl(side gamepad.Side, z gamepad.Zone) (Control, bool) {
	if !z.Active() || int(z) >= ZonesPerStick {
		return 0, false
	}
	return zoneControls[side][z], true
}

// ParseControl looks a control up by its configuration name.
func ParseControl(name string) (Control, bool) {
	c, ok := controlsByName[name]
	return c, ok
}
