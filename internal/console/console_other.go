//go:build !windows

// Package console detects how the process was started and keeps Ctrl+C
// working while SDL owns the main thread.
package console

// Detached is always false outside Windows.
func Detached() bool {
	return false
}

// NotifyInterrupt is a no-op outside Windows, where os/signal delivers
// SIGINT regardless of SDL.
func NotifyInterrupt(ch chan struct{}) func() {
	return func() {}
}
