// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go4.org/mem"
)

// A source reads bytes of JSON text and tracks the location of the next
// unread byte. Methods of source report errors by panicking with a
// *StateError or *NumberFormatError; the Reader recovers them at the
// boundary of each exported method.
type source struct {
	r   *bufio.Reader
	buf []byte // text of the current token

	off       int // offset of the next unread byte
	line, col int // apparent line and column offsets (0-based)
}

func newSource(r io.Reader) *source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &source{r: br}
}

// location reports the line and column of the next unread byte.
func (s *source) location() LineCol { return LineCol{Line: s.line + 1, Column: s.col} }

// peekByte returns the next unread byte without consuming it. It reports
// false at the end of the input.
func (s *source) peekByte() (byte, bool) {
	bs, err := s.r.Peek(1)
	if len(bs) == 1 {
		return bs[0], true
	} else if err != nil && err != io.EOF {
		s.fail(err, "read failed: %v", err)
	}
	return 0, false
}

// readByte consumes and returns the next byte. If the input is exhausted it
// fails with a *StateError wrapping io.ErrUnexpectedEOF.
func (s *source) readByte() byte {
	b, err := s.r.ReadByte()
	if err == io.EOF {
		s.fail(io.ErrUnexpectedEOF, "unexpected end of input")
	} else if err != nil {
		s.fail(err, "read failed: %v", err)
	}
	s.advance(b)
	return b
}

func (s *source) advance(b byte) {
	s.off++
	if b == '\n' {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
}

// skipSpace consumes insignificant whitespace.
func (s *source) skipSpace() {
	for {
		b, ok := s.peekByte()
		if !ok || !isSpace(b) {
			return
		}
		s.readByte()
	}
}

// expectByte consumes the next byte, which must be want.
func (s *source) expectByte(want byte) {
	b, ok := s.peekByte()
	if !ok {
		s.fail(io.ErrUnexpectedEOF, "expected %q, got end of input", want)
	} else if b != want {
		s.fail(errUnexpectedByte, "expected %q, got %q", want, b)
	}
	s.readByte()
}

// hasLiteral reports whether the unread input begins with lit.
func (s *source) hasLiteral(lit string) bool {
	bs, err := s.r.Peek(len(lit))
	if err != nil && err != io.EOF {
		s.fail(err, "read failed: %v", err)
	}
	return mem.B(bs).EqualString(lit)
}

// expectLiteral consumes lit, which must be next in the input.
func (s *source) expectLiteral(lit string) {
	if !s.hasLiteral(lit) {
		s.fail(errInvalidLiteral, "expected %s", lit)
	}
	n, _ := s.r.Discard(len(lit))
	s.off += n
	s.col += n // literals do not contain newlines
}

// lexNumber consumes a number and returns its text. The result is only
// valid until the next call of a method of s. The number must match
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// The byte following the number is not checked.
func (s *source) lexNumber() []byte {
	s.buf = s.buf[:0]
	if b, ok := s.peekByte(); ok && b == '-' {
		s.take()
	}
	b, ok := s.peekByte()
	if !ok || !isDigit(b) {
		s.numberError("expected digit")
	}
	s.take()
	if b != '0' {
		s.takeDigits()
	}

	// Fraction: a decimal point and at least one digit.
	if b, ok := s.peekByte(); ok && b == '.' {
		s.take()
		if s.takeDigits() == 0 {
			s.numberError("no digits after decimal point")
		}
	}

	// Exponent: a mark, an optional sign and at least one digit.
	if b, ok := s.peekByte(); ok && isExpMark(b) {
		s.take()
		if b, ok := s.peekByte(); ok && (b == '+' || b == '-') {
			s.take()
		}
		if s.takeDigits() == 0 {
			s.numberError("missing exponent digits")
		}
	}
	return s.buf
}

// take consumes the next byte into the token buffer.
func (s *source) take() { s.buf = append(s.buf, s.readByte()) }

// takeDigits consumes a run of decimal digits into the token buffer and
// reports how many were consumed.
func (s *source) takeDigits() int {
	var nd int
	for {
		b, ok := s.peekByte()
		if !ok || !isDigit(b) {
			return nd
		}
		s.take()
		nd++
	}
}

// scanString consumes the body and closing quote of a string whose opening
// quote has already been consumed, and returns the body with its escapes
// intact. The result is only valid until the next call of a method of s.
func (s *source) scanString() []byte {
	s.buf = s.buf[:0]
	for {
		b := s.stringByte()
		switch b {
		case '"':
			return s.buf
		case '\\':
			esc, n := s.readEscape()
			s.buf = append(s.buf, esc[:n]...)
		default:
			s.buf = append(s.buf, b)
		}
	}
}

// skipString consumes the body and closing quote of a string whose opening
// quote has already been consumed, and reports the number of body bytes
// discarded.
func (s *source) skipString() int {
	var nb int
	for {
		b := s.stringByte()
		switch b {
		case '"':
			return nb
		case '\\':
			_, n := s.readEscape()
			nb += n
		default:
			nb++
		}
	}
}

// stringByte reads the next byte of a string body.
func (s *source) stringByte() byte {
	if _, ok := s.peekByte(); !ok {
		s.fail(errors.Join(errUnterminated, io.ErrUnexpectedEOF), "unterminated string")
	}
	return s.readByte()
}

// readEscape consumes the remainder of an escape sequence after its
// backslash, and returns the complete undecoded sequence.
func (s *source) readEscape() (esc [6]byte, n int) {
	esc[0] = '\\'
	esc[1] = s.stringByte()
	switch esc[1] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return esc, 2
	case 'u':
		for i := 2; i < 6; i++ {
			esc[i] = s.stringByte()
			if !isHexDigit(esc[i]) {
				s.fail(errInvalidEscape, "invalid Unicode escape: not a hex digit: %q", esc[i])
			}
		}
		return esc, 6
	}
	s.fail(errInvalidEscape, "invalid %q after escape", esc[1])
	return esc, 0
}

// fail panics with a *StateError at the current location.
func (s *source) fail(err error, msg string, args ...any) {
	panic(&StateError{
		Offset:   s.off,
		Location: s.location(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

// numberError panics with a *NumberFormatError for the number being lexed.
func (s *source) numberError(msg string) {
	text := string(s.buf)
	if b, ok := s.peekByte(); ok {
		text += string(b)
	}
	panic(&NumberFormatError{
		Offset:   s.off,
		Location: s.location(),
		Text:     text,
		Message:  msg,
	})
}
