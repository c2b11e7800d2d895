// Package calc implements the four-operation calculator.
package calc

import (
	"errors"
)

// Operation names accepted by Calculate.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// Sentinel errors returned by Calculate.
var (
	ErrDivideByZero     = errors.New("divide by zero")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Operations lists the supported operations in documentation order.
func Operations() []string {
	return []string{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// Calculate applies op to a and b with IEEE-754 double semantics. Results are
// not rounded and overflow yields ±Inf.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	default:
		return 0, ErrInvalidOperation
	}
}
