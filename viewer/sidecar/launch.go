package sidecar

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// noBrowserEnv suppresses the sidecar's own browser auto-launch; the viewer
// window is the one that displays the GUI.
const noBrowserEnv = "IMF_NO_BROWSER=1"

// Process is the exclusively owned handle to a running sidecar. It is created
// by Launch and terminated exactly once, either by the caller on failure
// handling inside Launch or through Terminate at shutdown.
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser // held open; the sidecar keeps logging after the sniff
	logger *slog.Logger
}

// Launch spawns the sidecar binary at path in GUI mode and blocks until it
// announces its listening port on stdout. On success the returned process is
// still running and the port is nonzero. On any failure after a successful
// spawn the child is killed before the error is returned, so no orphaned
// sidecar survives a failed launch.
//
// The port sniff has no timeout: it resolves on the first matching line or on
// stream EOF, whichever comes first. Startup cannot proceed without a port,
// so blocking here is accepted.
func Launch(path string, logger *slog.Logger) (*Process, uint16, error) {
	cmd := exec.Command(path, "gui")
	cmd.Env = append(os.Environ(), noBrowserEnv)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, 0, fmt.Errorf("capturing sidecar stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, 0, fmt.Errorf("launching sidecar at %s: %w", path, err)
	}
	logger.Info("Sidecar spawned", "path", path, "pid", cmd.Process.Pid)

	port, err := SniffPort(stdout)
	if err != nil {
		if killErr := cmd.Process.Kill(); killErr != nil {
			logger.Warn("Failed to kill sidecar after port detection failure", "pid", cmd.Process.Pid, "error", killErr)
		}
		go cmd.Wait() // reap; the exit status of a failed launch is not interesting
		return nil, 0, fmt.Errorf("detecting sidecar port: %w", err)
	}

	logger.Info("Sidecar port detected", "pid", cmd.Process.Pid, "port", port)
	proc := &Process{
		cmd:    cmd,
		stdout: stdout,
		logger: logger.With("component", "Sidecar", "pid", cmd.Process.Pid),
	}
	return proc, port, nil
}

// Pid returns the sidecar's process ID.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Terminate force-kills the sidecar. This runs during shutdown, so failures
// are logged rather than escalated, and there is no wait for a graceful exit.
func (p *Process) Terminate() {
	if err := p.cmd.Process.Kill(); err != nil {
		p.logger.Warn("Failed to kill sidecar", "error", err)
		return
	}
	p.logger.Info("Sidecar killed")
	go p.cmd.Wait() // reap the zombie; nobody consumes the exit status
}
