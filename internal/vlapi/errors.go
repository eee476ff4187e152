package vlapi

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the remote API reports that the referenced
// dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// APIError is a non-success response from the remote API. Message carries
// whatever diagnostic detail the remote service provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("visual layer api: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("visual layer api: HTTP %d: %s", e.StatusCode, e.Message)
}
