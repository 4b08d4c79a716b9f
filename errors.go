// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
)

// ErrClosed is reported (wrapped in a *StateError) by calls to a Reader after
// it has been closed.
var ErrClosed = errors.New("use of closed reader")

// StateError reports a call that is not legal in the current structural
// context, or input whose structure does not match the calls made. A Reader
// or Writer that has reported a StateError must be discarded.
type StateError struct {
	Offset   int     // byte offset of the error, 0-based
	Location LineCol // line and column of the error; zero for a Writer
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *StateError) Error() string {
	if s.Location.Line == 0 {
		return s.Message
	}
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *StateError) Unwrap() error { return s.err }

// NumberFormatError reports a number whose text does not match the strict
// JSON number grammar, or that cannot be represented by the requested type.
type NumberFormatError struct {
	Offset   int     // byte offset of the error, 0-based
	Location LineCol // line and column of the error; zero for a Writer
	Text     string  // the text of the number, as far as it was read
	Message  string

	err error
}

// Error satisfies the error interface.
func (n *NumberFormatError) Error() string {
	msg := fmt.Sprintf("invalid number %q: %s", n.Text, n.Message)
	if n.Location.Line == 0 {
		return msg
	}
	return fmt.Sprintf("at %s: %s", n.Location, msg)
}

// Unwrap supports error wrapping.
func (n *NumberFormatError) Unwrap() error { return n.err }
