package gamepad

import "math"

// AxisMapping defines how a raw axis index maps to a stick coordinate.
type AxisMapping struct {
	Index    int32
	Side     Side
	Vertical bool
	Invert   bool
}

// ButtonMapping defines how a raw button index maps to a physical button.
type ButtonMapping struct {
	Index  int32
	Side   Side
	Button Button
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	// HasHat maps hat 0 onto the left d-pad.
	HasHat bool
}

// AxisToStick converts a raw SDL axis value (-32768..32767) to the 12-bit
// sub-pixel range used by StickReading.
func AxisToStick(raw int16, invert bool) uint16 {
	v := int32(raw)
	if invert {
		v = -v - 1
	}
	return uint16((v + math.MaxInt16 + 1) >> 4)
}

// Apply writes one raw button state into the snapshot's owning set.
func (m ButtonMapping) Apply(s *Snapshot, pressed bool) {
	if !pressed {
		return
	}
	*s = s.Press(m.Side, m.Button)
}

// Apply writes one raw axis value into the snapshot.
func (m AxisMapping) Apply(s *Snapshot, raw int16) {
	v := AxisToStick(raw, m.Invert)
	if m.Vertical {
		s.Sticks[m.Side].Vertical = v
	} else {
		s.Sticks[m.Side].Horizontal = v
	}
}

// SDL hat bits.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// ApplyHat presses the left d-pad buttons for the directions set in hat.
// Diagonals press both neighbours.
func ApplyHat(s *Snapshot, hat uint8) {
	ButtonMapping{Side: SideLeft, Button: ButtonUp}.Apply(s, hat&HatUp != 0)
	ButtonMapping{Side: SideLeft, Button: ButtonRight}.Apply(s, hat&HatRight != 0)
	ButtonMapping{Side: SideLeft, Button: ButtonDown}.Apply(s, hat&HatDown != 0)
	ButtonMapping{Side: SideLeft, Button: ButtonLeft}.Apply(s, hat&HatLeft != 0)
}

// Built-in mappings. SDL reports vertical axes growing downwards, the stick
// sensor grows upwards, hence the inverted vertical axes.

var joyConLeftMapping = &DeviceMapping{
	Name: "joycon_left",
	Axes: []AxisMapping{
		{Index: 0, Side: SideLeft},
		{Index: 1, Side: SideLeft, Vertical: true, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Side: SideLeft, Button: ButtonDown},
		{Index: 1, Side: SideLeft, Button: ButtonRight},
		{Index: 2, Side: SideLeft, Button: ButtonLeft},
		{Index: 3, Side: SideLeft, Button: ButtonUp},
		{Index: 4, Side: SideLeft, Button: ButtonCapture},
		{Index: 6, Side: SideLeft, Button: ButtonMinus},
		{Index: 7, Side: SideLeft, Button: ButtonLStick},
		{Index: 9, Side: SideLeft, Button: ButtonSL},
		{Index: 10, Side: SideLeft, Button: ButtonSR},
		{Index: 15, Side: SideLeft, Button: ButtonL},
		{Index: 16, Side: SideLeft, Button: ButtonZL},
	},
}

var joyConRightMapping = &DeviceMapping{
	Name: "joycon_right",
	Axes: []AxisMapping{
		{Index: 0, Side: SideRight},
		{Index: 1, Side: SideRight, Vertical: true, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Side: SideRight, Button: ButtonB},
		{Index: 1, Side: SideRight, Button: ButtonA},
		{Index: 2, Side: SideRight, Button: ButtonY},
		{Index: 3, Side: SideRight, Button: ButtonX},
		{Index: 5, Side: SideRight, Button: ButtonHome},
		{Index: 6, Side: SideRight, Button: ButtonPlus},
		{Index: 8, Side: SideRight, Button: ButtonRStick},
		{Index: 9, Side: SideRight, Button: ButtonSL},
		{Index: 10, Side: SideRight, Button: ButtonSR},
		{Index: 15, Side: SideRight, Button: ButtonR},
		{Index: 16, Side: SideRight, Button: ButtonZR},
	},
}

var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Side: SideLeft},
		{Index: 1, Side: SideLeft, Vertical: true, Invert: true},
		{Index: 2, Side: SideRight},
		{Index: 3, Side: SideRight, Vertical: true, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Side: SideRight, Button: ButtonB},
		{Index: 1, Side: SideRight, Button: ButtonA},
		{Index: 2, Side: SideRight, Button: ButtonY},
		{Index: 3, Side: SideRight, Button: ButtonX},
		{Index: 4, Side: SideLeft, Button: ButtonMinus},
		{Index: 5, Side: SideRight, Button: ButtonHome},
		{Index: 6, Side: SideRight, Button: ButtonPlus},
		{Index: 7, Side: SideLeft, Button: ButtonLStick},
		{Index: 8, Side: SideRight, Button: ButtonRStick},
		{Index: 9, Side: SideLeft, Button: ButtonL},
		{Index: 10, Side: SideRight, Button: ButtonR},
		{Index: 15, Side: SideLeft, Button: ButtonCapture},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: []AxisMapping{
		{Index: 0, Side: SideLeft},
		{Index: 1, Side: SideLeft, Vertical: true, Invert: true},
		{Index: 2, Side: SideRight},
		{Index: 3, Side: SideRight, Vertical: true, Invert: true},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Side: SideRight, Button: ButtonB},
		{Index: 1, Side: SideRight, Button: ButtonA},
		{Index: 2, Side: SideRight, Button: ButtonY},
		{Index: 3, Side: SideRight, Button: ButtonX},
		{Index: 4, Side: SideLeft, Button: ButtonL},
		{Index: 5, Side: SideRight, Button: ButtonR},
		{Index: 6, Side: SideLeft, Button: ButtonMinus},
		{Index: 7, Side: SideRight, Button: ButtonPlus},
		{Index: 8, Side: SideLeft, Button: ButtonLStick},
		{Index: 9, Side: SideRight, Button: ButtonRStick},
		{Index: 10, Side: SideRight, Button: ButtonHome},
	},
	HasHat: true,
}

const vendorNintendo = 0x057E

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	{vendorNintendo, 0x2006}: joyConLeftMapping,
	{vendorNintendo, 0x2007}: joyConRightMapping,
	{vendorNintendo, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
