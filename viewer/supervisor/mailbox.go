package supervisor

import (
	"log/slog"
	"sync"
)

// Mailbox is a single-slot holder for a file path from an open notification
// that arrived before the supervisor was ready. A new arrival overwrites an
// unconsumed value (last write wins); Take consumes the stored value exactly
// once.
type Mailbox struct {
	mu     sync.Mutex
	path   string
	stored bool
	logger *slog.Logger
}

// NewMailbox creates an empty mailbox.
func NewMailbox(logger *slog.Logger) *Mailbox {
	return &Mailbox{logger: logger.With("component", "Mailbox")}
}

// Store places path in the slot, replacing any unconsumed value.
func (m *Mailbox) Store(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stored {
		m.logger.Warn("Replacing unconsumed pending open request", "dropped", m.path, "stored", path)
	}
	m.path = path
	m.stored = true
}

// Take removes and returns the stored path. The second return is false when
// the slot is empty.
func (m *Mailbox) Take() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	path, ok := m.path, m.stored
	m.path = ""
	m.stored = false
	return path, ok
}
