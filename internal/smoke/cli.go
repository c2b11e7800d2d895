package smoke

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/hello/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) (string, error) {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.InitWithWriter(io.MultiWriter(os.Stdout, file)); err != nil {
		return "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return logFile, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Hello API Smoke Tool
====================

Runs the API contract checks concurrently against a running instance and
exits non-zero when any response deviates.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:3000")
  -rounds int
        Times the check table is executed (default 1)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -rps float
        Request rate limit, 0 for unlimited (default 0)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for run output (default: smoke_log_TIMESTAMP.log)
  -verbose
        Log every passing check
  -help
        Show this help message

Examples:
  # Check a local instance once
  go run ./cmd/smoke

  # Soak a deployment at 50 requests per second
  go run ./cmd/smoke -url https://hello.example.com -rounds 100 -rps 50
`)
}
