package gamepad

import (
	"math"
	"testing"

	"github.com/soar/joyshop/internal/battery"
)

func TestAxisToStick(t *testing.T) {
	tests := []struct {
		raw    int16
		invert bool
		want   uint16
	}{
		{0, false, StickCenter},
		{math.MinInt16, false, 0},
		{math.MaxInt16, false, 4095},
		{math.MinInt16, true, 4095},
		{math.MaxInt16, true, 0},
		{19200, false, StickCenter + 1200},
	}
	for _, tt := range tests {
		if got := AxisToStick(tt.raw, tt.invert); got != tt.want {
			t.Errorf("AxisToStick(%d, %v) = %d, want %d", tt.raw, tt.invert, got, tt.want)
		}
	}
}

func TestMappingApply(t *testing.T) {
	s := IdleSnapshot(battery.Medium)

	ButtonMapping{Side: SideRight, Button: ButtonZR}.Apply(&s, true)
	ButtonMapping{Side: SideRight, Button: ButtonHome}.Apply(&s, true)
	ButtonMapping{Side: SideLeft, Button: ButtonL}.Apply(&s, false)
	AxisMapping{Side: SideRight, Vertical: true, Invert: true}.Apply(&s, math.MinInt16)

	if !s.Right.Has(ButtonZR) {
		t.Error("ZR not stored on the right side")
	}
	if !s.Shared.Has(ButtonHome) || s.Right.Has(ButtonHome) {
		t.Error("Home not stored in the shared set")
	}
	if s.Left != 0 {
		t.Errorf("released L changed the left set: %b", s.Left)
	}
	if s.Sticks[SideRight].Vertical != 4095 {
		t.Errorf("right vertical = %d, want 4095", s.Sticks[SideRight].Vertical)
	}
	if s.Sticks[SideLeft] != CenteredStick {
		t.Errorf("left stick moved: %+v", s.Sticks[SideLeft])
	}
}

func TestApplyHat(t *testing.T) {
	s := IdleSnapshot(battery.Full)
	ApplyHat(&s, HatUp|HatLeft)

	want := IdleSnapshot(battery.Full).Press(SideLeft, ButtonUp).Press(SideLeft, ButtonLeft)
	if s != want {
		t.Errorf("hat up-left gave %+v, want %+v", s, want)
	}
	if !IsButtonPressed(s, SideLeft, ButtonLeft) || IsButtonPressed(s, SideLeft, ButtonDown) {
		t.Error("wrong d-pad buttons pressed")
	}
}

func TestGetMapping(t *testing.T) {
	if m := GetMapping(vendorNintendo, 0x2006); m != joyConLeftMapping {
		t.Errorf("Joy-Con (L) got %s", m.Name)
	}
	if m := GetMapping(vendorNintendo, 0x2007); m != joyConRightMapping {
		t.Errorf("Joy-Con (R) got %s", m.Name)
	}
	if m := GetMapping(0x045E, 0x028E); m != genericMapping {
		t.Errorf("unknown device got %s", m.Name)
	}
}

func TestMappingsUseOwnedSides(t *testing.T) {
	for _, m := range []*DeviceMapping{joyConLeftMapping, joyConRightMapping} {
		want := m.Buttons[0].Side
		for _, bm := range m.Buttons {
			if bm.Side != want {
				t.Errorf("%s maps %s onto %s", m.Name, bm.Button, bm.Side)
			}
		}
	}
}
