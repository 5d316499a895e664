package loaders

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ParseError reports a malformed or unreadable mesh file. Line is 1-based,
// or 0 when the failure is not tied to a line (for example a missing file).
type ParseError struct {
	File    string
	Line    int
	Message string

	inner error
	frame xerrors.Frame
}

func newParseError(file string, line int, message string, inner error) *ParseError {
	return &ParseError{
		File:    file,
		Line:    line,
		Message: message,
		inner:   inner,
		frame:   xerrors.Caller(1),
	}
}

func (e *ParseError) location() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d", e.File, e.Line)
	}
	return e.File
}

func (e *ParseError) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.location(), e.Message, e.inner)
	}
	return fmt.Sprintf("%s: %s", e.location(), e.Message)
}

func (e *ParseError) Format(f fmt.State, c rune) { // implements fmt.Formatter
	xerrors.FormatError(e, f, c)
}

func (e *ParseError) FormatError(p xerrors.Printer) error { // implements xerrors.Formatter
	p.Print(fmt.Sprintf("%s: %s", e.location(), e.Message))
	if p.Detail() {
		e.frame.Format(p)
	}
	return e.inner
}

func (e *ParseError) Unwrap() error {
	return e.inner
}
