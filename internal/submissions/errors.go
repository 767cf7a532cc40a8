package submissions

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the backend does not answer within the fetch timeout.
	ErrTimeout = errors.New("submissions: request timeout")

	// ErrInvalidResponse matches any ResponseError.
	ErrInvalidResponse = errors.New("submissions: invalid response")

	// ErrMissingScriptURL is returned by New when no endpoint is configured.
	ErrMissingScriptURL = errors.New("submissions: script URL is required")
)

// HTTPError reports a non-2xx status from the backend.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Error: %d", e.StatusCode)
}

// ResponseError reports a body that was not a successful getData envelope.
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return "Invalid response format from server"
	}
	return e.Message
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// NetworkError wraps transport failures.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// Describe renders err as the status line shown to dashboard users.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrTimeout) {
		return "Request timeout - server took too long to respond"
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return "Server error: " + httpErr.Error()
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return "Network error: " + respErr.Error()
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Network error: " + netErr.Error()
	}
	return "Network error: " + err.Error()
}
