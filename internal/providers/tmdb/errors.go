package tmdb

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when no API key is configured
var ErrMissingCredential = errors.New("API key invalid or missing")

// RemoteError is a non-success response or an unreadable body
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// NetworkError is a failure to reach the catalog at all
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
