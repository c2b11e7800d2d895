// Package types contains the response shapes shared by the service and the HTTP layer.
package types

import (
	"math"
	"strconv"
)

// HealthyStatus is the only status reported by the health probe.
const HealthyStatus = "healthy"

// Number is a float64 that serializes like a JavaScript number in JSON:
// NaN and ±Inf become null and negative zero becomes 0.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	if f == 0 {
		return []byte("0"), nil
	}
	// Same cut-offs as JavaScript's Number#toString: plain notation in
	// [1e-6, 1e21), exponent notation outside it.
	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(make([]byte, 0, 24), f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		if n := len(b); n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b, nil
}

// Valid reports whether n serializes as a JSON number rather than null.
func (n Number) Valid() bool {
	return !math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)
}

// ErrorResponse is the body of every 4xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by the greeter.
type MessageResponse struct {
	Message string `json:"message"`
}

// CalculationResponse carries a calculator result.
type CalculationResponse struct {
	Result Number `json:"result"`
}

// UserView is a synthesized user; nothing backs it.
type UserView struct {
	ID   Number `json:"id"`
	Name string `json:"name"`
}

// HealthStatus is the health probe body.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
