package binding

import "github.com/soar/joyshop/internal/keys"

// Table maps every Control to exactly one Binding. A Table is never modified
// once it has been handed to a Store; build a new one instead.
type Table struct {
	bindings [ControlCount]Binding
}

// NewTable builds a table from the given bindings. Controls not present in m
// get the no-op binding.
func NewTable(m map[Control]Binding) *Table {
	t := &Table{}
	for c, b := range m {
		if c >= 0 && c < ControlCount {
			t.bindings[c] = b
		}
	}
	return t
}

// Get returns the binding for c.
func (t *Table) Get(c Control) Binding {
	return t.bindings[c]
}


// Each calls fn for every control in table order.
func (t *Table) Each(fn func(Control, Binding)) {
	for c := Control(0); c < ControlCount; c++ {
		fn(c, t.bindings[c])
	}
}

// Default returns the built-in table: painting shortcuts, mirrored on both
// Joy-Con halves.
func Default() *Table {
	var (
		eraser  = Hold("Eraser", keys.E)
		shift   = Hold("Shift", keys.LeftShift)
		save    = Click("Save", keys.S).WithCtrl()
		finger  = Click("Finger", keys.N)
		brush   = Click("Brush", keys.B)
		dodge   = Click("Dodge", keys.O)
		rotate  = Hold("Rotate", keys.R)
		grab    = Hold("Grab", keys.Space)
		zoom    = Hold("Zoom", keys.Z)
		alt     = Hold("Alt", keys.LeftAlt)
		smaller = Click("Smaller Brush", keys.LeftBracket)
		larger  = Click("Larger Brush", keys.RightBracket)
		undo    = Click("Undo", keys.Z).WithCtrl()
		redo    = Click("Redo", keys.Z).WithCtrl().WithShift()
	)
	return NewTable(map[Control]Binding{
		LeftZL:                eraser,
		LeftL:                 shift,
		Minus:                 save,
		LeftStickTopLeft:      finger,
		LeftStickTopCenter:    brush,
		LeftStickTopRight:     dodge,
		LeftStickBottomLeft:   rotate,
		LeftStickBottomCenter: grab,
		LeftStickBottomRight:  zoom,
		Up:                    alt,
		Left:                  smaller,
		Right:                 larger,
		LeftSL:                undo,
		LeftSR:                redo,

		RightZR:                eraser,
		RightR:                 shift,
		Plus:                   save,
		RightStickTopLeft:      finger,
		RightStickTopCenter:    brush,
		RightStickTopRight:     dodge,
		RightStickBottomLeft:   rotate,
		RightStickBottomCenter: grab,
		RightStickBottomRight:  zoom,
		X:                      alt,
		Y:                      smaller,
		A:                      larger,
		RightSL:                undo,
		RightSR:                redo,
	})
}
