package keys

import (
	"errors"
	"log"
	"sync"
)

// ErrUnmappedKey is returned by an injector that has no OS code for a key.
var ErrUnmappedKey = errors.New("keys: key has no mapping on this platform")

// Injector synthesizes OS-level key events. Implementations must be safe for
// use by several polling loops at once.
type Injector interface {
	Press(k VirtualKey) error
	Release(k VirtualKey) error
}

// LogInjector only logs key events. It backs --dry-run and platforms without
// an injection backend.
type LogInjector struct {
	mu     sync.Mutex
	logger *log.Logger
}

// NewLogInjector logs to l, or to the standard logger when l is nil.
func NewLogInjector(l *log.Logger) *LogInjector {
	if l == nil {
		l = log.Default()
	}
	return &LogInjector{logger: l}
}

func (i *LogInjector) Press(k VirtualKey) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.logger.Printf("key %s pressed", k)
	return nil
}

func (i *LogInjector) Release(k VirtualKey) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.logger.Printf("key %s released", k)
	return nil
}

func (i *LogInjector) Close() error {
	return nil
}
