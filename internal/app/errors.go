package service

import "errors"

// Sentinel errors returned by Service operations.
var (
	ErrNameRequired = errors.New("name is required")
)
