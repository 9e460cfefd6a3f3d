// Package errz defines the structured errors reported while running programs.
package errz

import (
	"fmt"

	"github.com/braintranscriber/bt/op"
)

// ErrorKind represents the category of an error. A kind is itself an error
// so it can be used as an errors.Is target:
//
//	if errors.Is(err, errz.ErrUnbalancedLoop) { ... }
type ErrorKind int

const (
	// ErrUnbalancedLoop indicates a loop marker without a matching partner.
	ErrUnbalancedLoop ErrorKind = iota + 1
	// ErrHalted indicates execution was stopped by an observer.
	ErrHalted
	// ErrIO indicates the output stream or input stream failed.
	ErrIO
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnbalancedLoop:
		return "unbalanced loop"
	case ErrHalted:
		return "halted"
	case ErrIO:
		return "i/o error"
	default:
		return "error"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// StructuredError is an error raised at a specific instruction of a program.
type StructuredError struct {
	Message  string
	Kind     ErrorKind
	Position int // instruction index, -1 when unknown
	Opcode   op.Code
	Cause    error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (instruction %d)", e.Kind.String(), e.Message, e.Position)
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind of this error.
func (e *StructuredError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

// New returns a StructuredError of the given kind.
func New(kind ErrorKind, position int, code op.Code, format string, args ...any) *StructuredError {
	return &StructuredError{
		Message:  fmt.Sprintf(format, args...),
		Kind:     kind,
		Position: position,
		Opcode:   code,
	}
}

// UnbalancedLoop reports a loop marker at position that has no partner.
func UnbalancedLoop(position int, code op.Code) *StructuredError {
	var msg string
	switch code {
	case op.LoopStart:
		msg = "loop start has no matching loop end"
	case op.LoopEnd:
		msg = "loop end has no matching loop start"
	default:
		msg = fmt.Sprintf("%s is not a loop marker", code)
	}
	return New(ErrUnbalancedLoop, position, code, "%s", msg)
}

// Wrap returns a StructuredError of the given kind caused by err.
func Wrap(kind ErrorKind, position int, code op.Code, err error) *StructuredError {
	return &StructuredError{
		Message:  err.Error(),
		Kind:     kind,
		Position: position,
		Opcode:   code,
		Cause:    err,
	}
}
