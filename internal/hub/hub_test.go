package hub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/soar/joyshop/internal/binding"
)

type staticDevices []string

func (d staticDevices) Connected() []string { return d }

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload() error {
	r.calls++
	return r.err
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for h.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("hub has %d clients, want %d", h.Count(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad message %s: %v", data, err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
	return WSMessage{}
}

func runHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub()
	go h.Run(ctx)
	return h
}

func TestBroadcastActivations(t *testing.T) {
	h := runHub(t)

	a, b := NewClient(h, nil), NewClient(h, nil)
	h.Register(a)
	h.Register(b)
	waitForClients(t, h, 2)

	activations := make(chan string, 4)
	br := NewBroadcaster(h, activations, staticDevices{"Joy-Con (L)"}, binding.NewStore(binding.Default()), &countingReloader{})
	done := make(chan struct{})
	go func() {
		br.Run(context.Background())
		close(done)
	}()

	activations <- "Eraser"
	for _, c := range []*Client{a, b} {
		msg := receive(t, c)
		if msg.Type != TypeActivation || msg.Name != "Eraser" || msg.Seq == 0 {
			t.Errorf("got %+v, want activation Eraser", msg)
		}
	}

	close(activations)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the activation channel closed")
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := runHub(t)

	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)
	h.Unregister(c)
	waitForClients(t, h, 0)

	if _, ok := <-c.send; ok {
		t.Error("send channel still open after Unregister")
	}
	// Sending to a departed client must not panic.
	h.Send(c, NewReplyMessage(TypeReloaded, nil))
}

func TestSlowClientEvicted(t *testing.T) {
	h := runHub(t)

	slow, fast := NewClient(h, nil), NewClient(h, nil)
	h.Register(slow)
	h.Register(fast)
	waitForClients(t, h, 2)

	for i := 0; i < sendBuffer; i++ {
		slow.send <- []byte("{}")
	}
	h.Broadcast(NewActivationMessage(1, "Eraser"))
	waitForClients(t, h, 1)

	if msg := receive(t, fast); msg.Name != "Eraser" {
		t.Errorf("fast client got %+v", msg)
	}
}

func TestRunStopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := NewClient(h, nil)
	h.Register(c)
	waitForClients(t, h, 1)
	cancel()
	<-stopped

	if _, ok := <-c.send; ok {
		t.Error("send channel still open after Run returned")
	}
	// Late joins and leaves must not block.
	late := NewClient(h, nil)
	h.Register(late)
	h.Unregister(late)
	if _, ok := <-late.send; ok {
		t.Error("late client send channel left open")
	}
}

func TestInitialState(t *testing.T) {
	h := NewHub()
	c := NewClient(h, nil)
	br := NewBroadcaster(h, nil, staticDevices{"Joy-Con (L)", "Joy-Con (R)"}, binding.NewStore(binding.Default()), &countingReloader{})

	br.SendInitialState(c)

	status := receive(t, c)
	if status.Type != TypeStatus || len(status.Devices) != 2 {
		t.Errorf("first message = %+v, want status with 2 devices", status)
	}
	bindings := receive(t, c)
	if bindings.Type != TypeBindings || len(bindings.Bindings) != int(binding.ControlCount) {
		t.Errorf("second message = %+v, want full bindings", bindings.Type)
	}
	if bindings.Seq <= status.Seq {
		t.Errorf("seq not increasing: %d then %d", status.Seq, bindings.Seq)
	}
}

func TestReplyMessage(t *testing.T) {
	ok := NewReplyMessage(TypeReloaded, nil)
	if ok.Type != TypeReloaded || ok.Error != "" {
		t.Errorf("success reply = %+v", ok)
	}
	failed := NewReplyMessage(TypeReloaded, errors.New("bad file"))
	if failed.Type != TypeError || failed.Error != "bad file" {
		t.Errorf("failure reply = %+v", failed)
	}
}

func TestBroadcasterReload(t *testing.T) {
	r := &countingReloader{}
	br := NewBroadcaster(NewHub(), nil, staticDevices{}, binding.NewStore(nil), r)
	if err := br.Reload(); err != nil || r.calls != 1 {
		t.Errorf("Reload() = %v after %d calls", err, r.calls)
	}
	if msg := br.Bindings(); msg.Type != TypeBindings || msg.Bindings != nil {
		t.Errorf("Bindings() with empty store = %+v", msg)
	}
}
