package nutrition

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind categorizes a failed lookup for logs and metrics.
type ErrorKind string

const (
	ErrTimeout   ErrorKind = "timeout"   // client timeout or context deadline
	ErrTransport ErrorKind = "transport" // connection refused, DNS, reset, ...
	ErrStatus    ErrorKind = "status"    // unexpected HTTP status
	ErrDecode    ErrorKind = "decode"    // body is not the expected JSON shape
)

// APIError is returned by Client.Analyze for every failure.
// Its message is shown to the user verbatim after the error prefix.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

func transportError(err error) *APIError {
	kind := ErrTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = ErrTimeout
	}
	return &APIError{Kind: kind, Message: err.Error(), Err: err}
}

func statusError(code int, body []byte) *APIError {
	msg := string(body)
	var e errorResponse
	if jsonErr := unmarshal(body, &e); jsonErr == nil && e.Message != "" {
		msg = e.Message
	}
	return &APIError{
		Kind:       ErrStatus,
		StatusCode: code,
		Message:    fmt.Sprintf("nutritionix status %d: %s", code, msg),
	}
}

func decodeError(err error) *APIError {
	return &APIError{
		Kind:    ErrDecode,
		Message: fmt.Sprintf("decoding nutritionix response: %v", err),
		Err:     err,
	}
}

// Outcome labels a lookup result: "items", "empty" or the ErrorKind.
func Outcome(foods []FoodItem, err error) string {
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return string(apiErr.Kind)
		}
		return string(ErrTransport)
	}
	if len(foods) == 0 {
		return "empty"
	}
	return "items"
}
