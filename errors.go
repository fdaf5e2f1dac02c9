package ftplist

import (
	"errors"
	"fmt"
)

// ErrNoMatch is reported when a line conforms to none of the known listing
// layouts. It is an expected outcome for banners, totals lines and garbage,
// not a fault in the parser.
var ErrNoMatch = errors.New("ftplist: line matches no known listing format")

// ParseError carries the line that could not be parsed. It unwraps to
// ErrNoMatch, so callers that only care about the outcome can use errors.Is.
type ParseError struct {
	// Line is the raw input exactly as it was handed to the parser.
	Line string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("ftplist: unparseable LIST line %q", e.Line)
}

// Unwrap returns ErrNoMatch.
func (e *ParseError) Unwrap() error {
	return ErrNoMatch
}
