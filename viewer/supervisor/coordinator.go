package supervisor

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/rabenja/imf-viewer/viewer/navigation"
	"github.com/rabenja/imf-viewer/viewer/recents"
	"github.com/rabenja/imf-viewer/viewer/staging"
	"github.com/rabenja/imf-viewer/viewer/window"
)

// containerExt is the reserved extension for sealed containers; open
// notifications for anything else are dropped.
const containerExt = ".imf"

// Config holds configuration options for the Coordinator.
type Config struct {
	Window  window.Window
	Recents *recents.Store                   // Optional, skips recording when nil
	Logger  *slog.Logger                     // Optional, defaults to slog.Default()
	Stage   func(src string) (string, error) // Optional, defaults to staging.Stage
}

// Coordinator resolves the race between OS file-open notifications and the
// moment the supervisor becomes ready to build navigation targets. The two
// triggers run on independent execution paths with no ordering guarantee, so
// all shared state lives behind one lock; staging and window navigation run
// outside it.
type Coordinator struct {
	mu      sync.Mutex
	ready   bool
	state   *State
	pending *Mailbox

	window  window.Window
	recents *recents.Store
	stage   func(src string) (string, error)
	logger  *slog.Logger
}

// NewCoordinator creates a Coordinator. A window is required; everything
// else has defaults.
func NewCoordinator(config Config) (*Coordinator, error) {
	if config.Window == nil {
		return nil, fmt.Errorf("window is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stage := config.Stage
	if stage == nil {
		stage = staging.Stage
	}
	return &Coordinator{
		pending: NewMailbox(logger),
		window:  config.Window,
		recents: config.Recents,
		stage:   stage,
		logger:  logger.With("component", "Coordinator"),
	}, nil
}

// FileOpened handles one OS file-open notification. Before readiness the
// extracted path is parked in the pending slot for Ready to consume; after
// readiness the file is staged and the window is instructed to load it,
// synchronously on the caller's goroutine.
func (c *Coordinator) FileOpened(raw string) {
	path, ok := containerPath(raw)
	if !ok {
		c.logger.Debug("Ignoring open notification", "url", raw)
		return
	}

	c.mu.Lock()
	if !c.ready {
		c.pending.Store(path)
		c.mu.Unlock()
		c.logger.Info("Open request parked until supervisor is ready", "path", path)
		return
	}
	state := c.state
	c.mu.Unlock()

	navURL := c.resolveOpen(path, state.Port())
	if err := c.window.Navigate(navURL); err != nil {
		c.logger.Warn("Window navigation failed", "url", navURL, "error", err)
	}
}

// Ready marks the supervisor ready and returns the initial navigation URL,
// folding in a pending open request when one was parked. Called once, on the
// startup path, after the port is known.
func (c *Coordinator) Ready(state *State) string {
	c.mu.Lock()
	c.ready = true
	c.state = state
	path, hasPending := c.pending.Take()
	c.mu.Unlock()

	if !hasPending {
		return navigation.BaseURL(state.Port())
	}
	return c.resolveOpen(path, state.Port())
}

// resolveOpen stages the container and builds its navigation target. Staging
// failures degrade to navigating with the bare file name; the sidecar may
// already hold a copy from an earlier open.
func (c *Coordinator) resolveOpen(path string, port uint16) string {
	openID := uuid.New().String()
	fileName := filepath.Base(path)

	stagedPath, err := c.stage(path)
	if err != nil {
		c.logger.Warn("Staging failed, navigating with original name", "openID", openID, "path", path, "error", err)
		stagedPath = ""
	} else {
		c.logger.Info("Container staged", "openID", openID, "path", path, "staged", stagedPath)
	}

	if c.recents != nil {
		if err := c.recents.Record(fileName, path, stagedPath, port); err != nil {
			c.logger.Warn("Failed to record recent open", "openID", openID, "error", err)
		}
	}

	return navigation.OpenURL(port, fileName)
}

// containerPath extracts a usable path from a file-open notification. The
// notification may be a direct filesystem path, a file:// URL, or any other
// URL string; it is accepted only when the final segment carries the
// container extension.
func containerPath(raw string) (string, bool) {
	path := raw
	if u, err := url.Parse(raw); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	if !strings.HasSuffix(path, containerExt) {
		return "", false
	}
	return path, true
}
