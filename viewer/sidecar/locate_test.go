package sidecar

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestLocatePrefersResourceSidecarDir(t *testing.T) {
	resourceDir := t.TempDir()
	exeDir := t.TempDir()
	workDir := t.TempDir()

	touch(t, filepath.Join(resourceDir, "sidecar", "imf"))
	touch(t, filepath.Join(resourceDir, "imf"))
	touch(t, filepath.Join(exeDir, "imf"))
	touch(t, filepath.Join(workDir, "imf"))

	got := Locate("imf", resourceDir, exeDir, workDir)
	if got != filepath.Join(resourceDir, "sidecar", "imf") {
		t.Errorf("Locate = %s, expected resource sidecar dir to win", got)
	}
}

func TestLocateFallthroughOrder(t *testing.T) {
	resourceDir := t.TempDir()
	exeDir := t.TempDir()
	workDir := t.TempDir()

	touch(t, filepath.Join(exeDir, "imf"))
	touch(t, filepath.Join(workDir, "imf"))

	got := Locate("imf", resourceDir, exeDir, workDir)
	if got != filepath.Join(exeDir, "imf") {
		t.Errorf("Locate = %s, expected exe dir before work dir", got)
	}
}

func TestLocateWorkDirParent(t *testing.T) {
	parent := t.TempDir()
	workDir := filepath.Join(parent, "sub")
	if err := os.Mkdir(workDir, 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(parent, "imf"))

	got := Locate("imf", "", "", workDir)
	if got != filepath.Join(workDir, "..", "imf") {
		t.Errorf("Locate = %s, expected parent of work dir", got)
	}
}

func TestLocateNothingFound(t *testing.T) {
	got := Locate("imf", t.TempDir(), t.TempDir(), t.TempDir())
	if got != "imf" {
		t.Errorf("Locate = %s, expected bare name for PATH resolution", got)
	}
}

func TestLocateSkipsEmptyDirs(t *testing.T) {
	workDir := t.TempDir()
	touch(t, filepath.Join(workDir, "imf"))

	got := Locate("imf", "", "", workDir)
	if got != filepath.Join(workDir, "imf") {
		t.Errorf("Locate = %s", got)
	}
}
