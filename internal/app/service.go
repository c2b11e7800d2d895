// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/okian/hello/internal/domain/calc"
	"github.com/okian/hello/internal/domain/types"
	"github.com/okian/hello/internal/domain/user"
	"github.com/okian/hello/pkg/logger"
	"github.com/okian/hello/pkg/metrics"
)

// Greeting is the static body served at the root path.
const Greeting = "Hello, CI/CD!"

// TimestampLayout renders health timestamps as ISO-8601 UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Service implements the API dependencies. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	now    func() time.Time
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source used by Health.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service.
func New(opts ...Option) *Service {
	s := &Service{
		now:    time.Now,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Greeting returns the static root greeting.
func (s *Service) Greeting(_ context.Context) string {
	return Greeting
}

// Greet builds the greeting for the name query values. Repeated values are
// joined with commas; no value, or a single empty one, is ErrNameRequired.
func (s *Service) Greet(ctx context.Context, names []string) (types.MessageResponse, error) {
	if len(names) == 0 || (len(names) == 1 && names[0] == "") {
		metrics.RecordGreeting(metrics.OutcomeRejected)
		return types.MessageResponse{}, ErrNameRequired
	}
	name := strings.Join(names, ",")
	metrics.RecordGreeting(metrics.OutcomeSuccess)
	s.logger.Debug(ctx, "greeting", logger.Int("nameLength", len(name)))
	return types.MessageResponse{Message: "Hello, " + name + "!"}, nil
}

// User returns the synthesized view for the raw path identifier.
func (s *Service) User(ctx context.Context, rawID string) (types.UserView, error) {
	view, err := user.Lookup(rawID)
	if err != nil {
		metrics.RecordUserLookup(metrics.OutcomeRejected)
		s.logger.Debug(ctx, "user id rejected", logger.String("id", rawID))
		return types.UserView{}, err
	}
	metrics.RecordUserLookup(metrics.OutcomeSuccess)
	return view, nil
}

// Calculate applies op to a and b.
func (s *Service) Calculate(ctx context.Context, a, b float64, op string) (types.CalculationResponse, error) {
	result, err := calc.Calculate(a, b, op)
	if err != nil {
		label := op
		if errors.Is(err, calc.ErrInvalidOperation) {
			// Keep label cardinality bounded.
			label = "invalid"
		}
		metrics.RecordCalculation(label, metrics.OutcomeRejected)
		s.logger.Debug(ctx, "calculation rejected", logger.String("operation", op), logger.Error(err))
		return types.CalculationResponse{}, err
	}
	metrics.RecordCalculation(op, metrics.OutcomeSuccess)
	return types.CalculationResponse{Result: types.Number(result)}, nil
}

// Health reports the service as healthy, stamped with the current UTC time.
func (s *Service) Health(_ context.Context) types.HealthStatus {
	metrics.RecordHealthCheck()
	return types.HealthStatus{
		Status:    types.HealthyStatus,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
}
