package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/okian/hello/internal/domain/calc"
	"github.com/okian/hello/internal/domain/types"
)

// MaxBodyBytes caps the size of JSON request bodies.
const MaxBodyBytes = 100 << 10

// CalculateDependencies defines the narrow dependency set for the calculate handler.
type CalculateDependencies interface {
	Calculate(ctx context.Context, a, b float64, op string) (types.CalculationResponse, error)
}

// CalculateHandler handles POST /calculate requests.
type CalculateHandler struct {
	deps CalculateDependencies
}

// NewCalculateHandler creates a new calculate handler.
func NewCalculateHandler(deps CalculateDependencies) *CalculateHandler {
	return &CalculateHandler{deps: deps}
}

// calculationRequest holds the validated operands of a calculation.
type calculationRequest struct {
	A, B      float64
	Operation string
}

// HandleCalculate validates the body and applies the requested operation.
// Checks run in order: field presence, operand types, then operation.
func (h *CalculateHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeBody(w, r)
	if err != nil {
		switch {
		case errors.Is(err, ErrBodyTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
		default:
			writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		}
		return
	}

	req, err := parseCalculation(fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			writeError(w, http.StatusBadRequest, MsgMissingFields)
		default:
			writeError(w, http.StatusBadRequest, MsgNotNumbers)
		}
		return
	}

	resp, err := h.deps.Calculate(r.Context(), req.A, req.B, req.Operation)
	if err != nil {
		switch {
		case errors.Is(err, calc.ErrDivideByZero):
			writeError(w, http.StatusBadRequest, MsgDivideByZero)
		default:
			writeError(w, http.StatusBadRequest, MsgInvalidOperation)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeBody reads a JSON object body into its raw members. Bodies that are
// not declared as JSON, empty bodies and top-level arrays yield no members.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if !isJSONContent(r.Header.Get("Content-Type")) {
		return fields, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(body) == 0 {
		return fields, nil
	}

	switch trimmed := bytes.TrimLeft(body, " \t\r\n"); {
	case len(trimmed) > 0 && trimmed[0] == '{':
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		return fields, nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		if !json.Valid(body) {
			return nil, ErrInvalidJSON
		}
		return fields, nil
	default:
		return nil, ErrInvalidJSON
	}
}

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// parseCalculation applies the presence and type checks to the raw members.
// A member holding null is present; the operation must also be truthy.
func parseCalculation(fields map[string]json.RawMessage) (calculationRequest, error) {
	rawA, okA := fields["a"]
	rawB, okB := fields["b"]
	rawOp, okOp := fields["operation"]
	if !okA || !okB || !okOp || !truthy(rawOp) {
		return calculationRequest{}, ErrMissingFields
	}

	a, okA := number(rawA)
	b, okB := number(rawB)
	if !okA || !okB {
		return calculationRequest{}, ErrNotNumbers
	}

	var op string
	if err := json.Unmarshal(rawOp, &op); err != nil {
		// Truthy non-string operations never match a known operation.
		op = string(rawOp)
	}
	return calculationRequest{A: a, B: b, Operation: op}, nil
}

// number reports whether raw is a JSON number and returns its value.
// Literals beyond float64 range become infinities.
func number(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "false", `""`:
		return false
	}
	if f, ok := number(raw); ok {
		return f != 0
	}
	return true
}
