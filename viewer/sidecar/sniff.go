package sidecar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// portMarker is the literal substring the sidecar prints once its HTTP
// server is listening, followed by the dynamically chosen port.
const portMarker = "running at http://127.0.0.1:"

// SniffPort scans r line by line for the sidecar's startup announcement and
// returns the port parsed from it. It stops consuming r immediately after the
// first successful match; the rest of the stream is left unread. A marker
// line whose trailing token does not parse as a nonzero 16-bit port is
// skipped and scanning continues. When r ends without a match (the process
// exited or closed its output early) an error is returned.
func SniffPort(r io.Reader) (uint16, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, portMarker) {
			continue
		}
		token := line[strings.LastIndex(line, ":")+1:]
		port, err := strconv.ParseUint(strings.TrimSpace(token), 10, 16)
		if err != nil || port == 0 {
			continue
		}
		return uint16(port), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("reading sidecar output: %w", err)
	}
	return 0, errors.New("sidecar output ended before a port was announced")
}
