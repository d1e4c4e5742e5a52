package confz

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrUnknownKey matches any *UnknownKeyError.
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrInvalidValue matches any *InvalidValueError.
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrTypeMismatch is returned by typed accessors when the stored value
	// is not of the accessor's type.
	ErrTypeMismatch = errors.New("configuration value type mismatch")
)

// UnknownKeyError reports an operation on a key that was never registered.
// It usually means a typo or a missing Rules.Has call.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown configuration key %q", e.Key)
}

// Is reports whether target is ErrUnknownKey.
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// InvalidValueError reports a value rejected by a key's validator.
type InvalidValueError struct {
	Key   string
	Value any
	Err   error
}

func (e *InvalidValueError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid value %v for key %q", e.Value, e.Key)
	}
	return fmt.Sprintf("invalid value %v for key %q: %v", e.Value, e.Key, e.Err)
}

// Unwrap returns the validator's error.
func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidValue.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
