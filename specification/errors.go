package specification

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a specification was built from an absent
	// or malformed argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPattern indicates a regular expression could not be compiled.
	ErrPattern = errors.New("invalid pattern")
)

// PatternError reports a regular expression that failed to compile.
// It matches ErrPattern and the underlying syntax error.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error {
	return []error{ErrPattern, e.Err}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
