// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jstream

import "errors"

// A frame records the structural position of a Reader or Writer within one
// level of nesting. The zero frame is the top level, outside any container.
type frame byte

const (
	topLevel    frame = iota // outside any array or object
	arrayOpen                // after "[", before the first element
	arrayValue               // after an element, awaiting "," or "]"
	arrayComma               // after ",", awaiting an element
	objectOpen               // after "{", before the first member
	objectValue              // after a member, awaiting "," or "}"
	objectComma              // after ",", awaiting a member name
	property                 // after a member name, awaiting its value

	// closed is never stored on a stack. A transition that yields closed
	// means the frame is complete and must be popped.
	closed
)

var frameStr = [...]string{
	topLevel:    "top level",
	arrayOpen:   "array start",
	arrayValue:  "array element",
	arrayComma:  "array comma",
	objectOpen:  "object start",
	objectValue: "object member",
	objectComma: "object comma",
	property:    "member value",
	closed:      "closed",
}

func (f frame) String() string { return frameStr[f] }

func (f frame) isArray() bool  { return f == arrayOpen || f == arrayValue || f == arrayComma }
func (f frame) isObject() bool { return f == objectOpen || f == objectValue || f == objectComma }

// awaitsName reports whether the next token in f should be a member name.
func (f frame) awaitsName() bool { return f.isObject() }

// afterComma reports whether f has consumed a comma that still needs an
// element or member to follow it.
func (f frame) afterComma() bool { return f == arrayComma || f == objectComma }

// closer returns the delimiter that ends the container described by f, or 0
// if f is not inside a container.
func (f frame) closer() byte {
	switch {
	case f.isArray():
		return ']'
	case f.isObject():
		return '}'
	}
	return 0
}

// An op is a grammar event applied to the innermost frame.
type op byte

const (
	opValue     op = iota // a value begins (scalar, "[" or "{")
	opName                // a member name and its colon
	opComma               // a separating comma
	opEndArray            // "]"
	opEndObject           // "}"
)

// Errors reported by step for illegal transitions.
var (
	errNotContainer     = errors.New("not inside an array or object")
	errLeadingComma     = errors.New("unexpected comma")
	errTrailingComma    = errors.New("unexpected trailing comma")
	errMissingComma     = errors.New("missing comma between elements")
	errExpectedName     = errors.New("inside object, member name expected")
	errExpectedValue    = errors.New("member name must be followed by a value")
	errNameOutside      = errors.New("member name outside of object")
	errMismatchDelim    = errors.New("mismatched closing delimiter")
	errTopLevelScalar   = errors.New("top level, array or object expected")
	errNoValue          = errors.New("value expected")
	errUnexpectedByte   = errors.New("unexpected character")
	errInvalidEscape    = errors.New("invalid escape sequence")
	errUnterminated     = errors.New("unterminated string")
	errInvalidLiteral   = errors.New("invalid literal")
	errFractionalNumber = errors.New("number has a fractional part")
)

// step reports the frame that replaces f when o is applied to it. A result of
// closed means the frame has ended. It does not modify any state, so that
// the grammar can be checked independently of input.
func step(f frame, o op) (frame, error) {
	switch f {
	case topLevel:
		switch o {
		case opValue:
			return topLevel, nil
		case opName:
			return f, errNameOutside
		case opComma:
			return f, errLeadingComma
		}
		return f, errNotContainer

	case arrayOpen, arrayComma:
		switch o {
		case opValue:
			return arrayValue, nil
		case opName:
			return f, errNameOutside
		case opComma:
			return f, errLeadingComma
		case opEndArray:
			if f == arrayComma {
				return f, errTrailingComma
			}
			return closed, nil
		}
		return f, errMismatchDelim

	case arrayValue:
		switch o {
		case opValue:
			return f, errMissingComma
		case opName:
			return f, errNameOutside
		case opComma:
			return arrayComma, nil
		case opEndArray:
			return closed, nil
		}
		return f, errMismatchDelim

	case objectOpen, objectComma:
		switch o {
		case opValue:
			return f, errExpectedName
		case opName:
			return objectValue, nil
		case opComma:
			return f, errLeadingComma
		case opEndObject:
			if f == objectComma {
				return f, errTrailingComma
			}
			return closed, nil
		}
		return f, errMismatchDelim

	case objectValue:
		switch o {
		case opValue:
			return f, errExpectedName
		case opName:
			return f, errMissingComma
		case opComma:
			return objectComma, nil
		case opEndObject:
			return closed, nil
		}
		return f, errMismatchDelim

	case property:
		if o == opValue {
			return closed, nil
		}
		return f, errExpectedValue
	}
	panic("invalid frame " + f.String())
}

// A frameStack is the nesting context of a Reader or Writer. An empty stack
// is at the top level.
type frameStack []frame

func (s frameStack) top() frame {
	if len(s) == 0 {
		return topLevel
	}
	return s[len(s)-1]
}

func (s *frameStack) push(f frame) { *s = append(*s, f) }

func (s *frameStack) pop() { *s = (*s)[:len(*s)-1] }

// replace sets the innermost frame to f, popping it if f is closed. It has
// no effect at the top level.
func (s *frameStack) replace(f frame) {
	if len(*s) == 0 {
		return
	} else if f == closed {
		s.pop()
		return
	}
	(*s)[len(*s)-1] = f
}

// apply applies o to the innermost frame, updating s.
func (s *frameStack) apply(o op) error {
	next, err := step(s.top(), o)
	if err != nil {
		return err
	}
	s.replace(next)
	return nil
}

// containers reports the number of open arrays and objects in s.
func (s frameStack) containers() int {
	var n int
	for _, f := range s {
		if f != property {
			n++
		}
	}
	return n
}
