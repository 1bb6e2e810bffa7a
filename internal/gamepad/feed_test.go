package gamepad

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/soar/joyshop/internal/battery"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestFeedLogsStallOnce(t *testing.T) {
	logs := captureLog(t)
	f := NewFeed("Joy-Con (L)", 2)
	s := IdleSnapshot(battery.Full)

	for i := 0; i < 2; i++ {
		if !f.Push(s) {
			t.Fatalf("push %d dropped with room in the buffer", i)
		}
	}
	for i := 0; i < 60; i++ {
		if f.Push(s) {
			t.Fatal("push into a full feed succeeded")
		}
	}
	if n := strings.Count(logs.String(), "stalled"); n != 1 {
		t.Errorf("stall logged %d times, want 1:\n%s", n, logs)
	}

	if _, err := f.Next(); err != nil {
		t.Fatal(err)
	}
	if !f.Push(s) {
		t.Fatal("push after draining dropped")
	}
	if !strings.Contains(logs.String(), "caught up, 60 snapshots dropped") {
		t.Errorf("missing recovery line:\n%s", logs)
	}

	// A second stall is reported again.
	f.Push(s)
	if n := strings.Count(logs.String(), "stalled"); n != 2 {
		t.Errorf("second stall logged %d stall lines in total, want 2", n)
	}
}

func TestFeedClose(t *testing.T) {
	f := NewFeed("pad", 4)
	want := IdleSnapshot(battery.Low).Press(SideRight, ButtonA)
	f.Push(want)
	f.Close()

	got, err := f.Next()
	if err != nil || got != want {
		t.Fatalf("Next() = %+v, %v; want the queued snapshot", got, err)
	}
	if _, err := f.Next(); !errors.Is(err, ErrDisconnected) {
		t.Errorf("Next() on a drained feed = %v, want ErrDisconnected", err)
	}
}
