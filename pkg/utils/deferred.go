// Package utils holds small helpers shared by the command line entry point.
package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter buffers log output while the terminal is owned by the TUI.
// Flush replays it once the screen is restored.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes the buffered output to w one line at a time and resets the
// buffer. Line-oriented writers such as zerolog.ConsoleWriter expect a single
// JSON event per Write.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	scanner := bufio.NewScanner(&d.buf)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		line := append(append([]byte(nil), scanner.Bytes()...), '\n')
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write deferred log: %w", err)
		}
	}
	d.buf.Reset()
	return scanner.Err()
}

// Len reports the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}
