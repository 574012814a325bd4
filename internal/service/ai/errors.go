package ai

import (
	"errors"
	"fmt"
)

// ErrUnavailable means no chat model is configured.
var ErrUnavailable = errors.New("suggestion model unavailable")

// NetworkError covers transport failures, non-2xx replies and provider errors.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError means the model answered but not with the expected two-field JSON object.
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected completion reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
