package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging configures the standard logger. When toFile is set, output
// is duplicated into logs/hammeroverlay.log; the returned closer releases it.
func SetupLogging(toFile bool) (io.Closer, error) {
	log.SetPrefix("[hammeroverlay] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if !toFile {
		return io.NopCloser(nil), nil
	}

	dir, err := LogsDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return f, nil
}
