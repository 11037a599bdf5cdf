package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the token is missing, expired or rejected. Every
// screen treats it the same way: back to the login page.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound maps HTTP 404. Most callers treat it as "empty" rather than
// as a failure (a post with no comments 404s on its comments endpoint).
var ErrNotFound = errors.New("not found")

// ConnectivityError wraps transport-level failures (timeout, DNS,
// connection refused). Its message names the configured backend address so
// the alert tells the user what to check.
type ConnectivityError struct {
	BaseURL string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach the server at %s, check that the backend is running", e.BaseURL)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// RequestError is a business failure the backend reported with a message.
// The message is surfaced verbatim.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
