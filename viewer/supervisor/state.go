// Package supervisor owns the run-wide state of the sidecar and resolves the
// race between OS file-open notifications and application readiness.
package supervisor

import (
	"log/slog"
	"sync"
)

// Terminator is the part of the sidecar process handle the supervisor
// consumes at shutdown. *sidecar.Process satisfies it.
type Terminator interface {
	Terminate()
}

// State aggregates the live sidecar handle and its discovered port for the
// lifetime of a run. The port is written once at construction and immutable;
// the process handle is consumed exactly once by Terminate.
type State struct {
	mu     sync.Mutex
	proc   Terminator
	port   uint16
	logger *slog.Logger
}

// NewState wraps a successfully launched sidecar and its sniffed port.
func NewState(proc Terminator, port uint16, logger *slog.Logger) *State {
	return &State{
		proc:   proc,
		port:   port,
		logger: logger.With("component", "Supervisor"),
	}
}

// Port returns the sidecar's discovered port.
func (s *State) Port() uint16 {
	return s.port
}

// Terminate kills the sidecar. The handle is taken under the lock so a second
// firing of the window-destroyed event cannot act twice; cleanup is
// best-effort and errors stay inside the process handle's own logging.
func (s *State) Terminate() {
	s.mu.Lock()
	proc := s.proc
	s.proc = nil
	s.mu.Unlock()

	if proc == nil {
		s.logger.Debug("Terminate called with no live sidecar")
		return
	}
	proc.Terminate()
}
