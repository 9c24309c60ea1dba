package dataerr

import (
	"errors"
	"fmt"
	"strings"
)

// UserError reports malformed user-supplied data.
type UserError struct {
	// File is the name of the offending file, if known.
	File string
	// Line is the 1-based line number, or 0 when not line oriented.
	Line int
	// Msg is the human-readable description of the problem.
	Msg string
	// Err is the underlying cause, if any.
	Err error
}

func (e *UserError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Message())
	return b.String()
}

// Message returns the description without the file and line prefix.
func (e *UserError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "invalid data"
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// New creates a UserError with the given message.
func New(msg string) *UserError {
	return &UserError{Msg: msg}
}

// Newf creates a UserError with a formatted message.
func Newf(format string, args ...any) *UserError {
	return &UserError{Msg: fmt.Sprintf(format, args...)}
}

// AtLine tags err with a line number. An existing UserError keeps its
// message and cause; anything else becomes the cause of a new one.
func AtLine(line int, err error) *UserError {
	if ue, ok := As(err); ok {
		cp := *ue
		cp.Line = line
		return &cp
	}
	return &UserError{Line: line, Msg: err.Error(), Err: err}
}

// InFile tags err with a file name, keeping any line number already set.
func InFile(file string, err error) *UserError {
	if ue, ok := As(err); ok {
		cp := *ue
		cp.File = file
		return &cp
	}
	return &UserError{File: file, Msg: err.Error(), Err: err}
}

// As extracts the first UserError in err's chain.
func As(err error) (*UserError, bool) {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// IsUserError reports whether err's chain contains a UserError.
func IsUserError(err error) bool {
	_, ok := As(err)
	return ok
}
