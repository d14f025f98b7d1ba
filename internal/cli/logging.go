package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Yossy4131/LT/pkg/config"
	"github.com/sirupsen/logrus"
)

// newLogger builds the process logger. With log_file set, entries go to both
// the file and stderr; the returned closer releases the file.
func newLogger(cfg *config.Config, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	if cfg.IsDevMode() {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		logger.SetOutput(stderr)
		return logger, nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}

	logger.SetOutput(io.MultiWriter(logFile, stderr))
	return logger, logFile, nil
}
