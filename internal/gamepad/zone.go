package gamepad

import "math"

// Zone is the angular slot a stick occupies, or Neutral while it rests in
// the dead zone.
type Zone int

const Neutral Zone = -1

func (z Zone) Active() bool {
	return z != Neutral
}

// Default classifier settings.
const (
	DefaultSlots       = 6
	DefaultEnterRadius = 800
	DefaultExitRadius  = 500
)

// Classifier turns raw stick readings into zones. A stick at rest must travel
// past EnterRadius before any zone is reported, and once in a zone it stays
// classified until it comes back inside ExitRadius. ExitRadius must be
// smaller than EnterRadius and Slots must divide 360.
type Classifier struct {
	Slots       int
	Offset      int // degrees added before partitioning
	EnterRadius float64
	ExitRadius  float64
}

func DefaultClassifier() Classifier {
	return Classifier{
		Slots:       DefaultSlots,
		EnterRadius: DefaultEnterRadius,
		ExitRadius:  DefaultExitRadius,
	}
}

// Classify returns the zone for r given the zone reported for the previous
// poll.
func (c Classifier) Classify(prev Zone, r StickReading) Zone {
	x := float64(r.Horizontal) - StickCenter
	y := float64(r.Vertical) - StickCenter

	deg := math.Atan2(y, x)*180/math.Pi + float64(c.Offset)
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	sqrDist := x*x + y*y
	radius := c.EnterRadius
	if prev.Active() {
		radius = c.ExitRadius
	}
	if sqrDist <= radius*radius {
		return Neutral
	}

	width := 360 / c.Slots
	for i := 0; i < c.Slots; i++ {
		from := float64(width * i)
		to := float64(width * (i + 1))
		if from <= deg && deg < to {
			return Zone(i)
		}
	}
	return Neutral
}
