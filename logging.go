package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// setupLogging sends all commonlog output to path. The TUI owns the
// terminal, so nothing is ever logged to stderr while it runs.
func setupLogging(path string, verbosity int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	}

	// Fail early with a readable error instead of inside the backend.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	f.Close()

	commonlog.Configure(verbosity, &path)
	return nil
}
