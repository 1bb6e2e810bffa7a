package gamepad

import (
	"testing"

	"github.com/soar/joyshop/internal/battery"
)

func TestIsButtonDownUp(t *testing.T) {
	idle := IdleSnapshot(battery.Full)
	zl := idle.Press(SideLeft, ButtonZL)

	if !IsButtonDown(idle, zl, SideLeft, ButtonZL) {
		t.Error("ZL press not reported down")
	}
	if IsButtonUp(idle, zl, SideLeft, ButtonZL) {
		t.Error("ZL press reported up")
	}
	if !IsButtonUp(zl, idle, SideLeft, ButtonZL) {
		t.Error("ZL release not reported up")
	}
	if IsButtonDown(zl, zl, SideLeft, ButtonZL) {
		t.Error("held ZL reported down again")
	}
}

func TestSideOwnedButtons(t *testing.T) {
	idle := IdleSnapshot(battery.Full)
	leftSL := idle.Press(SideLeft, ButtonSL)

	if !IsButtonDown(idle, leftSL, SideLeft, ButtonSL) {
		t.Error("left SL not reported on the left side")
	}
	if IsButtonDown(idle, leftSL, SideRight, ButtonSL) {
		t.Error("left SL leaked into the right side")
	}
}

func TestSharedButtons(t *testing.T) {
	idle := IdleSnapshot(battery.Full)
	minus := idle.Press(SideLeft, ButtonMinus)

	if minus.Shared != buttonSet(ButtonMinus) {
		t.Fatalf("minus not stored in the shared set: %+v", minus)
	}
	for _, side := range []Side{SideLeft, SideRight} {
		if !IsButtonDown(idle, minus, side, ButtonMinus) {
			t.Errorf("shared minus not reported down from %s", side)
		}
	}
}

func snapshotsForSymmetry() []Snapshot {
	idle := IdleSnapshot(battery.Full)
	return []Snapshot{
		idle,
		idle.Press(SideLeft, ButtonZL),
		idle.Press(SideLeft, ButtonZL).Press(SideRight, ButtonA),
		idle.Press(SideRight, ButtonSR).Press(SideLeft, ButtonHome),
		idle.Press(SideLeft, ButtonSL).Press(SideLeft, ButtonUp),
	}
}

func TestEdgeSymmetryAndExclusivity(t *testing.T) {
	snaps := snapshotsForSymmetry()
	for i, p := range snaps {
		for j, c := range snaps {
			for _, side := range []Side{SideLeft, SideRight} {
				for b := Button(0); b < buttonCount; b++ {
					down := IsButtonDown(p, c, side, b)
					if down != IsButtonUp(c, p, side, b) {
						t.Errorf("snaps %d->%d %s %s: down/up not symmetric under swap", i, j, side, b)
					}
					if down && IsButtonUp(p, c, side, b) {
						t.Errorf("snaps %d->%d %s %s: reported both down and up", i, j, side, b)
					}
				}
			}
		}
	}
}

func buttonSet(buttons ...Button) ButtonSet {
	var s ButtonSet
	for _, b := range buttons {
		s = s.With(b)
	}
	return s
}

func TestButtonSet(t *testing.T) {
	s := buttonSet(ButtonA, ButtonB)
	if !s.Has(ButtonA) || !s.Has(ButtonB) || s.Has(ButtonX) {
		t.Errorf("unexpected set contents %032b", s)
	}
}
