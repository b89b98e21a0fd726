// Package window is the boundary to the native shell that displays the
// viewer. Creating window chrome is not this program's job; the supervisor
// only needs something it can point at a URL.
package window

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/rabenja/imf-viewer/viewer/navigation"
)

// Window is the collaborator the coordinator instructs to load navigation
// targets.
type Window interface {
	Navigate(rawURL string) error
}

// BrowserWindow displays the viewer in the user's default browser, standing
// in for a native webview shell. Navigate opens (or re-opens) the URL.
type BrowserWindow struct {
	logger *slog.Logger
}

// NewBrowserWindow creates a browser-backed window.
func NewBrowserWindow(logger *slog.Logger) *BrowserWindow {
	return &BrowserWindow{logger: logger.With("component", "BrowserWindow")}
}

// Navigate opens rawURL in the default browser after checking it against the
// navigation allow-list.
func (w *BrowserWindow) Navigate(rawURL string) error {
	if !navigation.Allowed(rawURL) {
		return fmt.Errorf("navigation to %s refused by allow-list", rawURL)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser for %s: %w", rawURL, err)
	}
	w.logger.Info("Opened browser", "url", rawURL)
	go cmd.Wait()
	return nil
}
