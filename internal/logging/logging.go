// Package logging routes the standard logger. Output is discarded unless
// debug logging is requested, because every host owns the terminal or screen.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

const FileName = "plexus-debug.log"

// Setup discards log output when debug is false and returns a nil file.
// Otherwise it appends to dir/plexus-debug.log through tea.LogToFile, which
// also keeps the bubbletea program's own diagnostics in the same file.
func Setup(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(dir, FileName), "plexus")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f, nil
}
