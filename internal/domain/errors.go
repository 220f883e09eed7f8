package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned by SessionStore implementations when the
// requested session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// ServiceError wraps a failure of the external completion service. The
// pipeline recovers from it locally; callers that want diagnostics can
// unwrap it with errors.As.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service %s: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err unless it is already a ServiceError.
func NewServiceError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{Provider: provider, Err: err}
}
