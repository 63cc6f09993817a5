package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrNetwork   = errors.New("network error")
	ErrTimeout   = errors.New("request timed out")
	ErrMalformed = errors.New("malformed response")
)

// RemoteError is a non-success response reported by the project store.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store returned status %d", e.Status)
	}
	return fmt.Sprintf("store returned status %d: %s", e.Status, e.Message)
}

// ValidationError rejects form input before anything is sent to the store.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid project input: %v", e.Fields)
}
