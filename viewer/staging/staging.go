// Package staging copies user-referenced container files into the directory
// the sidecar serves from, so they can be referenced by bare file name in an
// open request.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir picks the staging destination for this call: the user's Desktop when it
// exists as a directory, then Downloads, then the system temp directory. The
// same preference order is used by the sidecar when choosing its working
// directory, which is what makes staged files visible to it.
func Dir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		for _, dir := range []string{
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Downloads"),
		} {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				return dir
			}
		}
	}
	return os.TempDir()
}

// Stage copies src into the preferred staging directory under its original
// base name and returns the destination path.
func Stage(src string) (string, error) {
	return StageInto(src, Dir())
}

// StageInto copies src into destDir under its original base name. When the
// canonicalized source and destination are the same file the copy is skipped;
// re-opening an already-staged container performs no write.
func StageInto(src, destDir string) (string, error) {
	dest := filepath.Join(destDir, filepath.Base(src))
	if samePath(src, dest) {
		return dest, nil
	}
	if err := copyFile(src, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// samePath reports whether a and b resolve to the same file on disk. Either
// path failing to resolve means they are not known to be the same.
func samePath(a, b string) bool {
	resolvedA, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false
	}
	resolvedB, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false
	}
	return resolvedA == resolvedB
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("flushing %s: %w", dest, err)
	}
	return nil
}
