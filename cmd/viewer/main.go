// IMF Viewer launches the imf GUI server as a supervised sidecar, discovers
// its dynamically chosen port, and opens a window on it. Double-clicked
// container files are resolved against startup ordering: a file-open
// notification may arrive before or after the sidecar is ready.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rabenja/imf-viewer/viewer/config"
	"github.com/rabenja/imf-viewer/viewer/recents"
	"github.com/rabenja/imf-viewer/viewer/sidecar"
	"github.com/rabenja/imf-viewer/viewer/supervisor"
	"github.com/rabenja/imf-viewer/viewer/window"
)

func main() {
	var configPath = flag.String("config", "", "Path to the viewer config file (TOML)")
	var sidecarPath = flag.String("sidecar", "", "Path to the imf binary (overrides config and lookup)")
	flag.Parse()

	// 1. Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	logger.Info("Starting IMF Viewer")

	// 2. Load configuration
	cfgPath := *configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultPath()
		if err != nil {
			logger.Error("Failed to resolve config path", "error", err)
			os.Exit(1)
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		logger.Error("Failed to resolve cache directory", "error", err)
		os.Exit(1)
	}
	appCacheDir := filepath.Join(cacheDir, "imf-viewer")
	if err := os.MkdirAll(appCacheDir, 0755); err != nil {
		logger.Error("Failed to create cache directory", "path", appCacheDir, "error", err)
		os.Exit(1)
	}

	// 3. Single-instance guard. A run owns at most one live sidecar; a second
	// viewer would spawn a second one.
	fileLock := flock.New(filepath.Join(appCacheDir, "viewer.lock"))
	locked, err := fileLock.TryLock()
	if err != nil {
		logger.Error("Failed to acquire instance lock", "error", err)
		os.Exit(1)
	}
	if !locked {
		logger.Error("IMF Viewer is already running (lock held by another process)")
		os.Exit(1)
	}
	defer func() { _ = fileLock.Unlock() }()

	// 4. Recents store. Failures here degrade to a viewer without history.
	store := openRecents(cfg, appCacheDir, logger)

	// 5. Coordinator must exist before any open notification is consumed.
	win := window.NewBrowserWindow(logger)
	coord, err := supervisor.NewCoordinator(supervisor.Config{
		Window:  win,
		Recents: store,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("Failed to create coordinator", "error", err)
		os.Exit(1)
	}

	// macOS file association passes the opened file as an argument. The
	// sidecar is not running yet, so these park in the pending slot.
	for _, arg := range flag.Args() {
		coord.FileOpened(arg)
	}

	// 6. Locate and launch the sidecar, blocking until the port is known.
	binPath := *sidecarPath
	if binPath == "" {
		binPath = cfg.Sidecar.Path
	}
	if binPath == "" {
		exeDir, resourceDir, workDir := lookupDirs(logger)
		binPath = sidecar.Locate(sidecar.Name(), resourceDir, exeDir, workDir)
	}

	proc, port, err := sidecar.Launch(binPath, logger)
	if err != nil {
		logger.Error("Failed to start sidecar", "error", err)
		os.Exit(1)
	}

	state := supervisor.NewState(proc, port, logger)
	navURL := coord.Ready(state)
	logger.Info("Viewer ready", "title", cfg.Window.Title, "port", port, "url", navURL)

	if err := win.Navigate(navURL); err != nil {
		logger.Error("Failed to open window", "url", navURL, "error", err)
		state.Terminate()
		os.Exit(1)
	}

	if store != nil {
		pruneRecents(cfg, store, logger)
	}

	// 7. With a browser shell there is no window-destroyed event to subscribe
	// to; SIGINT/SIGTERM stand in for it.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received signal, shutting down", "signal", sig.String())

	state.Terminate()
	logger.Info("IMF Viewer exited")
}

// openRecents connects the recent-opens database. Recents are supplementary,
// so any failure is logged and the viewer runs without them.
func openRecents(cfg *config.Config, appCacheDir string, logger *slog.Logger) *recents.Store {
	dbPath := cfg.Recents.Database
	if dbPath == "" {
		dbPath = filepath.Join(appCacheDir, "recents.db")
	}
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		logger.Warn("Recents database unavailable", "path", dbPath, "error", err)
		return nil
	}
	store, err := recents.NewStore(db)
	if err != nil {
		logger.Warn("Failed to initialize recents store", "path", dbPath, "error", err)
		return nil
	}
	logger.Info("Recents store initialized", "path", dbPath)
	return store
}

func pruneRecents(cfg *config.Config, store *recents.Store, logger *slog.Logger) {
	retention, err := cfg.RetentionDuration()
	if err != nil {
		logger.Warn("Skipping recents pruning", "error", err)
		return
	}
	deleted, err := store.Prune(retention)
	if err != nil {
		logger.Warn("Failed to prune recents", "error", err)
		return
	}
	if deleted > 0 {
		logger.Info("Pruned recent opens", "deleted", deleted)
	}
}

// lookupDirs derives the sidecar search locations: the executable's
// directory, the bundle resources next to it (macOS .app layout puts
// Contents/Resources beside Contents/MacOS), and the working directory.
func lookupDirs(logger *slog.Logger) (exeDir, resourceDir, workDir string) {
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		resourceDir = filepath.Join(exeDir, "..", "Resources")
	} else {
		logger.Warn("Cannot determine executable path", "error", err)
	}
	if wd, err := os.Getwd(); err == nil {
		workDir = wd
	} else {
		logger.Warn("Cannot determine working directory", "error", err)
	}
	return exeDir, resourceDir, workDir
}
