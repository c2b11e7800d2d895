package smoke

import (
	"bytes"
	"fmt"
	"net/http"
	"reflect"

	"github.com/goccy/go-json"
)

// Check is one request and the response it must produce.
type Check struct {
	Name        string
	Method      string
	Path        string
	Body        string
	ContentType string
	WantStatus  int
	WantJSON    string   // Exact JSON document, compared structurally
	WantText    string   // Exact plain text body
	WantKeys    []string // Keys the JSON object must carry, values unchecked
}

// Checks returns the contract table exercised by a run.
func Checks() []Check {
	calc := func(name, body string, status int, want string) Check {
		return Check{
			Name:        name,
			Method:      http.MethodPost,
			Path:        "/calculate",
			Body:        body,
			ContentType: "application/json",
			WantStatus:  status,
			WantJSON:    want,
		}
	}
	get := func(name, path string, status int, want string) Check {
		return Check{Name: name, Method: http.MethodGet, Path: path, WantStatus: status, WantJSON: want}
	}

	return []Check{
		{Name: "root", Method: http.MethodGet, Path: "/", WantStatus: StatusOK, WantText: "Hello, CI/CD!"},
		get("greet", "/greet?name=Alice", StatusOK, `{"message":"Hello, Alice!"}`),
		get("greet missing name", "/greet", StatusBadRequest, `{"error":"Name parameter is required"}`),
		get("greet empty name", "/greet?name=", StatusBadRequest, `{"error":"Name parameter is required"}`),
		get("user", "/user/123", StatusOK, `{"id":123,"name":"User123"}`),
		get("user leading zeros", "/user/007", StatusOK, `{"id":7,"name":"User007"}`),
		get("user not numeric", "/user/abc", StatusBadRequest, `{"error":"User ID must be a number"}`),
		calc("add", `{"a":5,"b":3,"operation":"add"}`, StatusOK, `{"result":8}`),
		calc("subtract", `{"a":10,"b":4,"operation":"subtract"}`, StatusOK, `{"result":6}`),
		calc("multiply", `{"a":6,"b":7,"operation":"multiply"}`, StatusOK, `{"result":42}`),
		calc("divide", `{"a":20,"b":5,"operation":"divide"}`, StatusOK, `{"result":4}`),
		calc("zero operands", `{"a":0,"b":0,"operation":"add"}`, StatusOK, `{"result":0}`),
		calc("divide by zero", `{"a":10,"b":0,"operation":"divide"}`, StatusBadRequest, `{"error":"Cannot divide by zero"}`),
		calc("missing fields", `{"a":1}`, StatusBadRequest, `{"error":"Missing required fields: a, b, operation"}`),
		calc("empty operation", `{"a":1,"b":2,"operation":""}`, StatusBadRequest, `{"error":"Missing required fields: a, b, operation"}`),
		calc("string operands", `{"a":"5","b":3,"operation":"modulo"}`, StatusBadRequest, `{"error":"a and b must be numbers"}`),
		calc("invalid operation", `{"a":1,"b":2,"operation":"modulo"}`, StatusBadRequest, `{"error":"Invalid operation. Use: add, subtract, multiply, divide"}`),
		{Name: "health", Method: http.MethodGet, Path: "/health", WantStatus: StatusOK, WantKeys: []string{"status", "timestamp"}},
		get("not found", "/does-not-exist", StatusNotFound, `{"error":"Route not found"}`),
		{Name: "wrong method", Method: http.MethodDelete, Path: "/greet", WantStatus: StatusNotFound, WantJSON: `{"error":"Route not found"}`},
	}
}

// Verify compares a response against the check's expectations.
func (c Check) Verify(status int, body []byte) error {
	if status != c.WantStatus {
		return fmt.Errorf("%w: status %d, want %d", ErrUnexpectedBody, status, c.WantStatus)
	}

	switch {
	case c.WantText != "":
		if string(body) != c.WantText {
			return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedBody, body, c.WantText)
		}
	case c.WantJSON != "":
		var got, want interface{}
		if err := json.Unmarshal(body, &got); err != nil {
			return fmt.Errorf("%w: %q is not JSON: %w", ErrUnexpectedBody, body, err)
		}
		if err := json.Unmarshal([]byte(c.WantJSON), &want); err != nil {
			return fmt.Errorf("check %q has invalid expectation: %w", c.Name, err)
		}
		if !reflect.DeepEqual(got, want) {
			return fmt.Errorf("%w: got %s, want %s", ErrUnexpectedBody, bytes.TrimSpace(body), c.WantJSON)
		}
	case len(c.WantKeys) > 0:
		var got map[string]interface{}
		if err := json.Unmarshal(body, &got); err != nil {
			return fmt.Errorf("%w: %q is not a JSON object: %w", ErrUnexpectedBody, body, err)
		}
		for _, k := range c.WantKeys {
			if _, ok := got[k]; !ok {
				return fmt.Errorf("%w: missing key %q in %s", ErrUnexpectedBody, k, body)
			}
		}
	}
	return nil
}
