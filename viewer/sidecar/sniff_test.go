package sidecar

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// lineReader yields one line per Read call and counts how many lines were
// consumed, so tests can assert the sniffer stops at the first match.
type lineReader struct {
	lines []string
	next  int
}

func (r *lineReader) Read(p []byte) (int, error) {
	if r.next >= len(r.lines) {
		return 0, io.EOF
	}
	line := r.lines[r.next] + "\n"
	r.next++
	return copy(p, line), nil
}

func TestSniffPort(t *testing.T) {
	r := &lineReader{lines: []string{
		"starting",
		"IMF GUI running at http://127.0.0.1:54321",
		"extra",
	}}

	port, err := SniffPort(r)
	if err != nil {
		t.Fatalf("SniffPort failed: %v", err)
	}
	if port != 54321 {
		t.Errorf("Expected port 54321, got %d", port)
	}
	if r.next != 2 {
		t.Errorf("Expected sniffer to stop after 2 lines, consumed %d", r.next)
	}
}

func TestSniffPortEOFWithoutMatch(t *testing.T) {
	_, err := SniffPort(strings.NewReader("starting\nshutting down\n"))
	if err == nil {
		t.Fatal("Expected error when stream closes without a port line")
	}
}

func TestSniffPortEmptyStream(t *testing.T) {
	if _, err := SniffPort(strings.NewReader("")); err == nil {
		t.Fatal("Expected error for empty stream")
	}
}

func TestSniffPortSkipsMalformedMarkerLines(t *testing.T) {
	r := strings.NewReader(
		"IMF GUI running at http://127.0.0.1:notaport\n" +
			"IMF GUI running at http://127.0.0.1:0\n" +
			"IMF GUI running at http://127.0.0.1:99999\n" +
			"IMF GUI running at http://127.0.0.1:8080\n")

	port, err := SniffPort(r)
	if err != nil {
		t.Fatalf("SniffPort failed: %v", err)
	}
	if port != 8080 {
		t.Errorf("Expected port 8080, got %d", port)
	}
}

func TestSniffPortReadError(t *testing.T) {
	_, err := SniffPort(&failingReader{})
	if err == nil {
		t.Fatal("Expected error from failing reader")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
