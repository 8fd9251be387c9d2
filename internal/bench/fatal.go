package bench

import "github.com/pkg/errors"

// fatalError marks a broken benchmark precondition (missing file, read
// failing mid-stream). Drivers exit the process on it; the harness never
// averages over it.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Cause() error  { return e.err }
func (e *fatalError) Unwrap() error { return e.err }

// Fatal wraps err as unrecoverable. Fatal(nil) is nil.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

// Fatalf creates a new unrecoverable error.
func Fatalf(format string, args ...any) error {
	return &fatalError{err: errors.Errorf(format, args...)}
}

// IsFatal reports whether err, or anything it wraps, is unrecoverable.
func IsFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe)
}
