// Package smoke implements a concurrent contract checker that exercises a
// running instance of the API and reports which responses deviate.
package smoke

import "time"

// Config holds configuration for a smoke run
type Config struct {
	BaseURL string        // Base URL of the service
	Rounds  int           // Times the full check table is executed
	Workers int           // Number of concurrent workers
	RPS     float64       // Request rate limit, 0 disables pacing
	Timeout time.Duration // HTTP request timeout
	LogFile string        // Log file for run output
	Verbose bool          // Log every check result
}

// Stats holds run statistics
type Stats struct {
	ChecksRun    int
	ChecksPassed int
	ChecksFailed int
	Failures     []Failure
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Failure describes one check whose response did not match.
type Failure struct {
	Check  string
	Reason string
}
