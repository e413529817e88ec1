package ranges

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedToken marks a token that does not match the range grammar:
	// bad rank symbol, wrong length, unknown suffix, equal ranks in a
	// suited/offsuit token or an unparsable frequency.
	ErrMalformedToken = errors.New("malformed token")

	// ErrFrequencyOutOfRange marks a frequency outside [0, 1].
	ErrFrequencyOutOfRange = errors.New("frequency out of range")
)

// ParseError identifies the offending token of a range string.
type ParseError struct {
	Token  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid range token %q: %v: %s", e.Token, e.Err, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func malformed(token, format string, args ...any) *ParseError {
	return &ParseError{Token: token, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedToken}
}
