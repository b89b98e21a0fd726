// Package sidecar launches and supervises the imf server process that hosts
// the viewer's content on a locally bound port.
package sidecar

import (
	"os"
	"path/filepath"
	"runtime"
)

// Name returns the platform-appropriate sidecar executable name.
func Name() string {
	if runtime.GOOS == "windows" {
		return "imf.exe"
	}
	return "imf"
}

// Locate returns the first candidate path for the sidecar binary that exists
// on disk. Candidates are probed in order: the bundled resources (both a
// sidecar subdirectory and the resource root), the directory of the running
// executable, the working directory, and its parent. When nothing exists the
// bare name is returned and resolution is left to PATH lookup at spawn time.
// Empty directory arguments are skipped.
func Locate(name, resourceDir, exeDir, workDir string) string {
	var candidates []string
	if resourceDir != "" {
		candidates = append(candidates,
			filepath.Join(resourceDir, "sidecar", name),
			filepath.Join(resourceDir, name),
		)
	}
	if exeDir != "" {
		candidates = append(candidates, filepath.Join(exeDir, name))
	}
	if workDir != "" {
		candidates = append(candidates,
			filepath.Join(workDir, name),
			filepath.Join(workDir, "..", name),
		)
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return name
}
