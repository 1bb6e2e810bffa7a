package gamepad

// IsButtonPressed reports whether b is held in s when looking at side's own
// buttons together with the shared ones.
func IsButtonPressed(s Snapshot, side Side, b Button) bool {
	return s.Buttons(side).Has(b) || s.Shared.Has(b)
}

// IsButtonDown reports a release->press transition of b between two
// consecutive snapshots.
func IsButtonDown(prev, curr Snapshot, side Side, b Button) bool {
	return !IsButtonPressed(prev, side, b) && IsButtonPressed(curr, side, b)
}

// IsButtonUp reports a press->release transition of b between two
// consecutive snapshots.
func IsButtonUp(prev, curr Snapshot, side Side, b Button) bool {
	return IsButtonPressed(prev, side, b) && !IsButtonPressed(curr, side, b)
}
