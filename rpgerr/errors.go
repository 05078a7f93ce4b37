// Package rpgerr provides structured, code-tagged errors for battle-core
// rule failures. It lets a command handler or status hook communicate *why*
// an action could not proceed without resorting to exceptions-as-control-flow
// or stringly-typed messages.
package rpgerr

import (
	"errors"
	"fmt"
)

// Code categorizes why a battle rule stopped an action. Codes line up with
// spec.md §7's error taxonomy: soft-failure, data-integrity, authoring, and
// outcome-integrity kinds each map to one or more Codes below.
type Code string

const (
	// CodeResourceExhausted: insufficient MP, no item stock, out of uses.
	CodeResourceExhausted Code = "resource_exhausted"
	// CodeInvalidTarget: no valid targets resolved for the command.
	CodeInvalidTarget Code = "invalid_target"
	// CodeNotAllowed: the battle flags or content rules forbid the action.
	CodeNotAllowed Code = "not_allowed"
	// CodeNotFound: a data-integrity gap (unknown id referenced).
	CodeNotFound Code = "not_found"
	// CodeAlreadyExists: an authoring error, duplicate registration.
	CodeAlreadyExists Code = "already_exists"
	// CodeInvalidArgument: an authoring error, malformed registration input.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeInternal: a failure the battle core could not otherwise classify.
	CodeInternal Code = "internal"
)

// Error is a code-tagged error carrying optional metadata about the game
// state at the point of failure.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an *Error at construction time.
type Option func(*Error)

// WithMeta attaches a key/value pair of game-state context to the error.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// WithCause wraps an underlying error.
func WithCause(cause error) Option {
	return func(e *Error) { e.Cause = cause }
}

// New builds a coded Error with the given message and options.
func New(code Code, message string, opts ...Option) *Error {
	e := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Is reports whether err is an *Error with the given code, so callers can
// write `if rpgerr.Is(err, rpgerr.CodeResourceExhausted)` instead of type
// switching.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the Code from err, returning CodeInternal if err is not a
// rpgerr *Error (or is nil, for which it returns "").
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
