package vpcflow

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNotification is returned when a notification body, or the
	// topic message it wraps, is not valid JSON.
	ErrMalformedNotification = errors.New("malformed notification")
	// ErrFieldCountMismatch marks a text line whose field count violates the
	// active field policy.
	ErrFieldCountMismatch = errors.New("field count mismatch")
	// ErrUnsupportedFormat marks an object key with no known suffix.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrDecodeFailure wraps decompression and columnar read failures.
	ErrDecodeFailure = errors.New("decode failure")
	// ErrDependencyUnavailable is reported when columnar decoding is
	// requested but the capability is disabled.
	ErrDependencyUnavailable = errors.New("columnar support unavailable")
	// ErrStorageUnavailable wraps object store failures other than a missing object.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrObjectNotFound is returned when the requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// FieldCountMismatchError describes a single rejected line.
type FieldCountMismatchError struct {
	Line int
	Want int
	Got  int
}

func (e *FieldCountMismatchError) Error() string {
	return fmt.Sprintf("line %d: %s: want %d fields, got %d", e.Line, ErrFieldCountMismatch, e.Want, e.Got)
}

// Is lets errors.Is match the ErrFieldCountMismatch sentinel.
func (e *FieldCountMismatchError) Is(target error) bool {
	return target == ErrFieldCountMismatch
}
