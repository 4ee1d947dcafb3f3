package apperr

import (
	"errors"
	"fmt"
)

// The recoverable error kinds callers branch on. None of these crash the
// process; the caller decides whether to retry, surface, or ignore.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrPayloadTooLarge  = errors.New("payload too large")
)

// LifecycleError reports an illegal state transition on status-bearing
// content: a submission already submitted or past its deadline, or feedback
// staff have already picked up.
type LifecycleError struct {
	Reason string
}

func (e *LifecycleError) Error() string {
	return "lifecycle: " + e.Reason
}

func Lifecycle(format string, args ...any) error {
	return &LifecycleError{Reason: fmt.Sprintf(format, args...)}
}

func IsLifecycle(err error) bool {
	var le *LifecycleError
	return errors.As(err, &le)
}
