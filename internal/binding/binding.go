// Package binding holds the table that maps every physical control to the
// key action it triggers, and the store through which polling loops share it.
package binding

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/soar/joyshop/internal/keys"
)

// Action selects what a Binding does.
type Action uint8

const (
	// ActionNone does nothing. It is the zero value.
	ActionNone Action = iota
	// ActionHold presses on activation and releases on deactivation.
	ActionHold
	// ActionClick presses and releases the key at once on activation.
	ActionClick
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHold:
		return "hold"
	case ActionClick:
		return "click"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ActionNone, nil
	case "hold":
		return ActionHold, nil
	case "click":
		return ActionClick, nil
	}
	return ActionNone, errors.Errorf("unknown action %q", s)
}

// KeyCombination is a main key plus the modifiers pressed around it.
type KeyCombination struct {
	Name  string
	Key   keys.VirtualKey
	Ctrl  bool
	Alt   bool
	Shift bool
}

// Binding is the action configured for one control.
type Binding struct {
	Action Action
	KeyCombination
}

// Hold returns a hold binding.
func Hold(name string, k keys.VirtualKey) Binding {
	return Binding{Action: ActionHold, KeyCombination: KeyCombination{Name: name, Key: k}}
}

// Click returns a click binding.
func Click(name string, k keys.VirtualKey) Binding {
	return Binding{Action: ActionClick, KeyCombination: KeyCombination{Name: name, Key: k}}
}

func (b Binding) WithCtrl() Binding {
	b.Ctrl = true
	return b
}

func (b Binding) WithAlt() Binding {
	b.Alt = true
	return b
}

func (b Binding) WithShift() Binding {
	b.Shift = true
	return b
}

func (b Binding) IsNone() bool {
	return b.Action == ActionNone
}

func (b Binding) String() string {
	if b.IsNone() {
		return "none"
	}
	var mods []string
	if b.Ctrl {
		mods = append(mods, "Ctrl")
	}
	if b.Alt {
		mods = append(mods, "Alt")
	}
	if b.Shift {
		mods = append(mods, "Shift")
	}
	mods = append(mods, b.Key.String())
	return fmt.Sprintf("%s %s (%s)", b.Action, strings.Join(mods, "+"), b.Name)
}
