package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTimeout marks an analysis that exceeded the advisor's wait bound. The
// in-flight worker is not cancelled; its late result is discarded.
var ErrTimeout = errors.New("analysis timed out")

// ValidationError reports a catalog entry missing required fields. The
// catalog is left unchanged when it is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// FormatError reports an unparseable persisted file. The previous in-memory
// state is preserved when it is returned.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed file %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ServiceError reports an external analyzer failure mapped to the user-facing
// message contract.
type ServiceError struct {
	Command string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("Error: Failed to analyze command '%s' - %v", e.Command, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// PermissionError reports a user/device permission check failure. It is
// surfaced before any external call is made.
type PermissionError struct {
	UserID string
	Device string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("Permission denied: You do not have access to device %s", e.Device)
}
