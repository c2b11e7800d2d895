package smoke

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/hello/pkg/logger"
)

// job is one check scheduled in a given round.
type job struct {
	round int
	check Check
}

// Run executes every check Rounds times and returns the statistics. It
// returns ErrChecksFailed when any response deviated from its check.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if err := validate(config); err != nil {
		return nil, err
	}

	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("rounds", config.Rounds),
		logger.Int("workers", config.Workers),
		logger.Float64("rps", config.RPS),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Run the check table concurrently
	if err := runChecks(ctx, config, client, stats); err != nil {
		return stats, fmt.Errorf("check execution failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(ctx, stats)

	if stats.ChecksFailed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrChecksFailed, stats.ChecksFailed, stats.ChecksRun)
	}
	logger.Get().Info(ctx, "smoke run completed successfully")
	return stats, nil
}

func validate(config *Config) error {
	switch {
	case config == nil:
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	case config.BaseURL == "":
		return fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	case config.Rounds <= 0:
		return fmt.Errorf("%w: rounds must be > 0", ErrInvalidConfig)
	case config.Workers <= 0:
		return fmt.Errorf("%w: workers must be > 0", ErrInvalidConfig)
	case config.RPS < 0:
		return fmt.Errorf("%w: rps must be >= 0", ErrInvalidConfig)
	case config.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be > 0", ErrInvalidConfig)
	}
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	probe := Check{Name: "health", Method: "GET", Path: "/health", WantStatus: StatusOK, WantKeys: []string{"status"}}
	status, body, err := client.Do(ctx, probe)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if err := probe.Verify(status, body); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runChecks fans the check table out to a worker pool, pacing requests with
// a token bucket when RPS is set. A run that stops before every check has
// executed is an error, whatever stopped it.
func runChecks(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) error {
	checks := Checks()
	total := len(checks) * config.Rounds

	limiter := rate.NewLimiter(rate.Inf, 0)
	if config.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RPS), 1)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		run    int64
		passed int64
		failed int64

		mu       sync.Mutex
		failures []Failure
		stopErr  error
	)

	jobs := make(chan job, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range jobs {
				if err := limiter.Wait(runCtx); err != nil {
					mu.Lock()
					if stopErr == nil {
						stopErr = err
					}
					mu.Unlock()
					cancel()
					return
				}

				err := runSingleCheck(runCtx, client, j.check)
				atomic.AddInt64(&run, 1)
				if err == nil {
					atomic.AddInt64(&passed, 1)
					if config.Verbose {
						logger.Get().Debug(ctx, "check passed", logger.String("check", j.check.Name), logger.Int("round", j.round))
					}
					continue
				}

				atomic.AddInt64(&failed, 1)
				logger.Get().Warn(ctx, "check failed",
					logger.String("check", j.check.Name),
					logger.Int("round", j.round),
					logger.Error(err))
				mu.Lock()
				if len(failures) < maxReportedFailures {
					failures = append(failures, Failure{Check: j.check.Name, Reason: err.Error()})
				}
				mu.Unlock()
			}
		}()
	}

	// Feed jobs to workers
	go func() {
		defer close(jobs)
		for round := 1; round <= config.Rounds; round++ {
			for _, c := range checks {
				select {
				case <-runCtx.Done():
					return
				case jobs <- job{round: round, check: c}:
				}
			}
		}
	}()

	wg.Wait()

	stats.ChecksRun = int(atomic.LoadInt64(&run))
	stats.ChecksPassed = int(atomic.LoadInt64(&passed))
	stats.ChecksFailed = int(atomic.LoadInt64(&failed))
	stats.Failures = failures

	if stats.ChecksRun < total {
		cause := stopErr
		if cause == nil {
			cause = ctx.Err()
		}
		if cause == nil {
			return fmt.Errorf("%w after %d of %d checks", ErrRunInterrupted, stats.ChecksRun, total)
		}
		return fmt.Errorf("%w after %d of %d checks: %w", ErrRunInterrupted, stats.ChecksRun, total, cause)
	}
	return nil
}

// runSingleCheck executes one check against the service.
func runSingleCheck(ctx context.Context, client *HTTPClient, check Check) error {
	status, body, err := client.Do(ctx, check)
	if err != nil {
		return err
	}
	return check.Verify(status, body)
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, checksPerSecond float64

	if stats.ChecksRun > 0 {
		successRate = float64(stats.ChecksPassed) / float64(stats.ChecksRun) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		checksPerSecond = float64(stats.ChecksRun) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("checksRun", stats.ChecksRun),
		logger.Int("checksPassed", stats.ChecksPassed),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("checksPerSecond", checksPerSecond))

	for _, f := range stats.Failures {
		logger.Get().Error(ctx, "failure", logger.String("check", f.Check), logger.String("reason", f.Reason))
	}
}
