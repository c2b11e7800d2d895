// Command smoke runs the API contract checks against a running instance.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/hello/internal/smoke"
	"github.com/okian/hello/pkg/logger"
)

// Default configuration constants.
const (
	defaultRounds      = 1
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL = flag.String("url", "http://localhost:3000", "Base URL of the service")
		rounds  = flag.Int("rounds", defaultRounds, "Times the check table is executed")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		rps     = flag.Float64("rps", 0, "Request rate limit, 0 for unlimited")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile = flag.String("log", "", "Log file for run output (default: smoke_log_TIMESTAMP.log)")
		verbose = flag.Bool("verbose", false, "Log every passing check")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp(os.Stdout)
		return 0
	}

	path, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTestTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL: *baseURL,
		Rounds:  *rounds,
		Workers: *workers,
		RPS:     *rps,
		Timeout: *timeout,
		LogFile: path,
		Verbose: *verbose,
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		if errors.Is(err, smoke.ErrChecksFailed) {
			logger.Get().Error(ctx, "smoke run found contract violations", logger.Error(err))
		} else {
			logger.Get().Error(ctx, "smoke run failed", logger.Error(err))
		}
		return 1
	}
	return 0
}
