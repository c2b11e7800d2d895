package smoke

import "errors"

// Error constants.
var (
	ErrInvalidConfig  = errors.New("invalid smoke config")
	ErrUnhealthy      = errors.New("service is not healthy")
	ErrChecksFailed   = errors.New("contract checks failed")
	ErrUnexpectedBody = errors.New("unexpected response body")
	ErrRunInterrupted = errors.New("run interrupted")
)
