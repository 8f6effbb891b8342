package strictconf

import (
	"errors"
	"fmt"
)

// TypeMismatchError reports that a retrieved value did not have the
// requested shape. It is the only error kind the accessor itself
// produces; provider errors pass through untouched.
type TypeMismatchError struct {
	// Key is the requested key. For list element failures it carries a
	// bracketed index suffix, e.g. "servers[2]".
	Key string
	// Expected is the requested shape descriptor, e.g. "string",
	// "int|null", "list<bool>", "map<string,float>".
	Expected string
	// Actual is a rendering of the value that was found: literal for
	// scalars and null, a short type token for composites.
	Actual string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("config key %q: expected %s, got %s", e.Key, e.Expected, e.Actual)
}

// IsTypeMismatch reports whether err is (or wraps) a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var mismatch *TypeMismatchError
	return errors.As(err, &mismatch)
}

// mismatch builds a TypeMismatchError for a value found under key.
func mismatch(key, expected string, actual Value) *TypeMismatchError {
	return &TypeMismatchError{Key: key, Expected: expected, Actual: actual.String()}
}
