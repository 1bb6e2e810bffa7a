package gamepad

import "log"

// Feed hands snapshots from a producer that must never block (the SDL
// thread) to the polling loop reading them. Push and Close belong to the
// producer goroutine; Next belongs to the consumer.
type Feed struct {
	name      string
	snapshots chan Snapshot

	// producer side only
	dropped int
}

func NewFeed(name string, buffer int) *Feed {
	return &Feed{name: name, snapshots: make(chan Snapshot, buffer)}
}

// Push queues s, or drops it when the consumer has fallen a full buffer
// behind. A stall is logged once when it starts and once when it ends.
func (f *Feed) Push(s Snapshot) bool {
	select {
	case f.snapshots <- s:
		if f.dropped > 0 {
			log.Printf("%s: polling loop caught up, %d snapshots dropped", f.name, f.dropped)
			f.dropped = 0
		}
		return true
	default:
		if f.dropped == 0 {
			log.Printf("%s: polling loop stalled, dropping snapshots", f.name)
		}
		f.dropped++
		return false
	}
}

// Next blocks for the next snapshot. It returns ErrDisconnected once the
// feed is closed and drained.
func (f *Feed) Next() (Snapshot, error) {
	s, ok := <-f.snapshots
	if !ok {
		return Snapshot{}, ErrDisconnected
	}
	return s, nil
}

func (f *Feed) Close() {
	close(f.snapshots)
}
