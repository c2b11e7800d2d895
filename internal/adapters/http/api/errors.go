package api

import "errors"

// Client-facing error messages. They are part of the API contract and must
// not change.
const (
	MsgNameRequired     = "Name parameter is required"
	MsgUserIDNotNumber  = "User ID must be a number"
	MsgMissingFields    = "Missing required fields: a, b, operation"
	MsgNotNumbers       = "a and b must be numbers"
	MsgDivideByZero     = "Cannot divide by zero"
	MsgInvalidOperation = "Invalid operation. Use: add, subtract, multiply, divide"
	MsgRouteNotFound    = "Route not found"
	MsgInvalidJSON      = "Invalid JSON body"
	MsgBodyTooLarge     = "Request body too large"
)

// Sentinel kinds for request decoding errors.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrNotNumbers    = errors.New("operands are not numbers")
	ErrInvalidJSON   = errors.New("invalid json body")
	ErrBodyTooLarge  = errors.New("request body too large")
)
