// Package battery maps a controller's coarse battery level to the pattern
// shown on its four player indicator lights.
package battery

import (
	"fmt"
	"strings"
)

// Level is the coarse charge level a controller reports.
type Level uint8

const (
	Empty Level = iota
	Critical
	Low
	Medium
	Full
)

func (l Level) String() string {
	switch l {
	case Empty:
		return "empty"
	case Critical:
		return "critical"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// FromPercent buckets a charge percentage into a Level. Negative values mean
// the device does not report a charge (wired or unknown) and count as Full.
func FromPercent(percent int) Level {
	switch {
	case percent < 0:
		return Full
	case percent <= 5:
		return Empty
	case percent <= 25:
		return Critical
	case percent <= 50:
		return Low
	case percent <= 75:
		return Medium
	}
	return Full
}

// Slots is a bitmask over the four indicator positions, bit i for slot i.
type Slots uint8

const (
	Slot0 Slots = 1 << iota
	Slot1
	Slot2
	Slot3

	NoSlots  Slots = 0
	AllSlots       = Slot0 | Slot1 | Slot2 | Slot3
)

func (s Slots) Has(i int) bool {
	return s&(1<<i) != 0
}

// Count returns how many slots are set.
func (s Slots) Count() int {
	n := 0
	for i := 0; i < 4; i++ {
		if s.Has(i) {
			n++
		}
	}
	return n
}

func (s Slots) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i := 0; i < 4; i++ {
		if !s.Has(i) {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", i)
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// Pattern is a combination of steadily lit and flashing indicators.
type Pattern struct {
	Steady   Slots
	Flashing Slots
}

// Lit returns the slots that are on during one blink phase. Transports
// without hardware blinking alternate between the two phases.
func (p Pattern) Lit(on bool) Slots {
	if on {
		return (p.Steady | p.Flashing) & AllSlots
	}
	return p.Steady & AllSlots
}

// Blinks reports whether the pattern has a flashing part.
func (p Pattern) Blinks() bool {
	return p.Flashing&AllSlots != 0
}

func (p Pattern) String() string {
	return fmt.Sprintf("steady=%s flashing=%s", p.Steady, p.Flashing)
}

var patterns = [...]Pattern{
	Empty:    {Steady: NoSlots, Flashing: AllSlots},
	Critical: {Steady: NoSlots, Flashing: Slot3},
	Low:      {Steady: Slot2 | Slot3},
	Medium:   {Steady: Slot1 | Slot2 | Slot3},
	Full:     {Steady: AllSlots},
}

// Indicators returns the light pattern for a battery level. Levels outside
// the known range are shown as Empty.
func Indicators(l Level) Pattern {
	if int(l) < len(patterns) {
		return patterns[l]
	}
	return patterns[Empty]
}
