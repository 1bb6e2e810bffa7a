package binding

import "sync"

// Store is the binding table shared by all polling loops. Readers take the
// read lock only long enough to copy the table pointer.
type Store struct {
	mu    sync.RWMutex
	table *Table
}

func NewStore(t *Table) *Store {
	return &Store{table: t}
}

// Load returns the current table. It is nil until one has been installed.
func (s *Store) Load() *Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Replace installs t for every subsequent Load.
func (s *Store) Replace(t *Table) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}
