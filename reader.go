// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/creachadair/jstream/internal/escape"

	"go4.org/mem"
)

// A Reader reads a JSON document as a stream of tokens in depth-first order.
// The caller pulls each token with the method corresponding to its expected
// type, and the Reader checks that the sequence of calls matches both the
// grammar and the input.
//
// If a method reports an error, the Reader is no longer usable and every
// subsequent call reports the same error. A Reader is not safe for
// concurrent use by multiple goroutines.
type Reader struct {
	src    *source
	closer io.Closer
	stk    frameStack
	err    error // sticky; set by the first failure or by Close
}

// NewReader constructs a new Reader that consumes input from r. If r
// implements io.Closer, it is closed by the Close method of the Reader.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{src: newSource(r)}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	return rd
}

// NewReaderString constructs a new Reader that consumes the UTF-8 bytes of s.
func NewReaderString(s string) *Reader { return NewReader(mem.NewReader(mem.S(s))) }

// BeginArray consumes the opening bracket of an array. It is legal at the
// top level, after a member name, or as an element of an array.
func (r *Reader) BeginArray() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.beginContainer(arrayOpen, '[')
	return nil
}

// BeginObject consumes the opening brace of an object. It is legal at the
// top level, after a member name, or as an element of an array.
func (r *Reader) BeginObject() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.beginContainer(objectOpen, '{')
	return nil
}

// EndArray consumes the closing bracket of the innermost open array.
func (r *Reader) EndArray() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.endContainer(opEndArray, ']')
	return nil
}

// EndObject consumes the closing brace of the innermost open object.
func (r *Reader) EndObject() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.endContainer(opEndObject, '}')
	return nil
}

// HasNext reports whether the innermost open array or object has another
// element. It is an error to call HasNext outside an array or object.
func (r *Reader) HasNext() (_ bool, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	return r.hasNext(), nil
}

// Peek reports the type of the next token without consuming it. At the end of
// the input Peek reports EndDocument, provided no array or object remains
// open.
func (r *Reader) Peek() (_ Token, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	return r.peek(), nil
}

// NextName consumes the name of the next object member, including the colon
// that follows it, and returns the decoded name.
func (r *Reader) NextName() (_ string, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.beginName()
	name := r.decodeString(r.src.scanString())
	r.endName()
	return name, nil
}

// NextString consumes a string value and returns its decoded contents.
func (r *Reader) NextString() (_ string, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.beginScalar()
	r.src.expectByte('"')
	return r.decodeString(r.src.scanString()), nil
}

// NextBool consumes a Boolean value.
func (r *Reader) NextBool() (_ bool, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	return r.nextBool(), nil
}

// NextNull consumes a null value.
func (r *Reader) NextNull() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.nextNull()
	return nil
}

// NextFloat64 consumes a number value and returns it as a float64. A number
// whose magnitude is too large for a float64 is reported as an error.
func (r *Reader) NextFloat64() (_ float64, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	text := r.nextNumber()
	v, perr := mem.ParseFloat(mem.B(text), 64)
	if perr != nil {
		r.numberError(text, perr, "out of range for float64")
	}
	return v, nil
}

// NextInt64 consumes a number value and returns it as an int64. The number
// must not have a fractional part, and must be in range for an int64.
// Numbers written with a fraction or exponent are accepted if their value is
// integral, so 1.0 and 1e2 are valid.
func (r *Reader) NextInt64() (_ int64, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	return r.parseInt(r.nextNumber(), 64), nil
}

// NextInt32 consumes a number value and returns it as an int32, with the
// same rules as NextInt64.
func (r *Reader) NextInt32() (_ int32, err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	return int32(r.parseInt(r.nextNumber(), 32)), nil
}

// SkipValue consumes the next value, including all its nested contents. It is
// legal wherever a value could be read, so not at the top level for scalars
// and not where an object member name is expected.
func (r *Reader) SkipValue() (err error) {
	defer r.recoverError(&err)
	r.checkUsable()
	r.skipValue()
	return nil
}

// Depth reports the number of arrays and objects currently open.
func (r *Reader) Depth() int { return r.stk.containers() }

// Location reports the line and column of the next unread byte of input.
func (r *Reader) Location() LineCol { return r.src.location() }

// Close closes the underlying input, if it implements io.Closer. After Close,
// all other methods of r report a *StateError wrapping ErrClosed. Calling
// Close more than once has no further effect.
func (r *Reader) Close() error {
	if se, ok := r.err.(*StateError); ok && se.err == ErrClosed {
		return nil
	}
	r.err = &StateError{Message: "reader is closed", err: ErrClosed}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Reader) checkUsable() {
	if r.err != nil {
		panic(r.err)
	}
}

func (r *Reader) recoverError(errp *error) {
	if perr := recover(); perr != nil {
		switch err := perr.(type) {
		case *StateError:
			*errp = err
		case *NumberFormatError:
			*errp = err
		default:
			panic(perr)
		}
		if r.err == nil {
			r.err = *errp
		}
	}
}

// prelude skips whitespace and a separating comma before the next token.
// A second comma is reported as an error by the frame it is applied to.
func (r *Reader) prelude() {
	r.src.skipSpace()
	for {
		b, ok := r.src.peekByte()
		if !ok || b != ',' {
			return
		}
		r.apply(opComma)
		r.src.readByte()
		r.src.skipSpace()
	}
}

// apply applies o to the innermost frame or fails.
func (r *Reader) apply(o op) {
	if err := r.stk.apply(o); err != nil {
		r.src.fail(err, "%v", err)
	}
}

func (r *Reader) beginContainer(f frame, open byte) {
	r.prelude()
	r.apply(opValue)
	r.src.expectByte(open)
	r.stk.push(f)
	r.src.skipSpace()
}

func (r *Reader) endContainer(o op, delim byte) {
	r.prelude()
	r.apply(o)
	r.src.expectByte(delim)
}

func (r *Reader) hasNext() bool {
	r.prelude()
	top := r.stk.top()
	if top.closer() == 0 {
		r.src.fail(errNotContainer, "HasNext outside array or object (%v)", top)
	}
	b, ok := r.src.peekByte()
	if !ok {
		r.src.fail(io.ErrUnexpectedEOF, "unexpected end of input in %v", top)
	} else if b == top.closer() {
		if top.afterComma() {
			r.src.fail(errTrailingComma, "%v", errTrailingComma)
		}
		return false
	}
	return true
}

func (r *Reader) peek() Token {
	r.prelude()
	b, ok := r.src.peekByte()
	if !ok {
		if len(r.stk) != 0 {
			r.src.fail(io.ErrUnexpectedEOF, "unexpected end of input in %v", r.stk.top())
		}
		return EndDocument
	}
	switch b {
	case '"':
		if r.stk.top().awaitsName() {
			return Name
		}
		return String
	case '[':
		return BeginArray
	case ']':
		return EndArray
	case '{':
		return BeginObject
	case '}':
		return EndObject
	case 'n':
		if r.src.hasLiteral(litNull) {
			return Null
		}
	case 't':
		if r.src.hasLiteral(litTrue) {
			return Boolean
		}
	case 'f':
		if r.src.hasLiteral(litFalse) {
			return Boolean
		}
	default:
		if isNumStart(b) {
			return Number
		}
	}
	r.src.fail(errUnexpectedByte, "unexpected %q", b)
	return Invalid
}

// beginName consumes the opening quote of a member name.
func (r *Reader) beginName() {
	r.prelude()
	r.apply(opName)
	r.src.expectByte('"')
}

// endName consumes the colon after a member name, whose closing quote has
// already been consumed, and awaits the member value.
func (r *Reader) endName() {
	r.src.skipSpace()
	r.src.expectByte(':')
	r.src.skipSpace()
	r.stk.push(property)
}

// beginScalar checks that a scalar value is legal here and accounts for it.
func (r *Reader) beginScalar() {
	r.prelude()
	if len(r.stk) == 0 {
		r.src.fail(errTopLevelScalar, "%v", errTopLevelScalar)
	}
	r.apply(opValue)
}

// delimited reports whether the next unread byte may follow a number or
// literal, and returns the byte.
func (r *Reader) delimited() (byte, bool) {
	b, ok := r.src.peekByte()
	return b, !ok || isSpace(b) || b == ',' || b == r.stk.top().closer()
}

func (r *Reader) nextBool() bool {
	r.beginScalar()
	var v bool
	switch {
	case r.src.hasLiteral(litTrue):
		r.src.expectLiteral(litTrue)
		v = true
	case r.src.hasLiteral(litFalse):
		r.src.expectLiteral(litFalse)
	default:
		r.src.fail(errInvalidLiteral, "expected true or false")
	}
	r.checkLiteralEnd()
	return v
}

func (r *Reader) nextNull() {
	r.beginScalar()
	r.src.expectLiteral(litNull)
	r.checkLiteralEnd()
}

func (r *Reader) checkLiteralEnd() {
	if b, ok := r.delimited(); !ok {
		r.src.fail(errInvalidLiteral, "unexpected %q after literal", b)
	}
}

// nextNumber consumes a number and returns its text, valid until the next
// read from the source.
func (r *Reader) nextNumber() []byte {
	r.beginScalar()
	text := r.src.lexNumber()
	if b, ok := r.delimited(); !ok {
		r.src.numberError(fmt.Sprintf("unexpected %q after number", b))
	}
	return text
}

// parseInt converts the text of a number to an integer of the given bit size.
func (r *Reader) parseInt(text []byte, bits int) int64 {
	if !bytes.ContainsAny(text, ".eE") {
		v, err := mem.ParseInt(mem.B(text), 10, bits)
		if err != nil {
			r.numberError(text, err, "out of range for int%d", bits)
		}
		return v
	}
	f, err := mem.ParseFloat(mem.B(text), 64)
	if err != nil {
		r.numberError(text, err, "out of range for int%d", bits)
	} else if f != math.Trunc(f) {
		r.numberError(text, errFractionalNumber, "%v", errFractionalNumber)
	}
	if lim := math.Ldexp(1, bits-1); f < -lim || f >= lim {
		r.numberError(text, nil, "out of range for int%d", bits)
	}
	return int64(f)
}

func (r *Reader) numberError(text []byte, err error, msg string, args ...any) {
	panic(&NumberFormatError{
		Offset:   r.src.off,
		Location: r.src.location(),
		Text:     string(text),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (r *Reader) decodeString(raw []byte) string {
	dec, err := escape.Unquote(mem.B(raw))
	if err != nil {
		r.src.fail(errInvalidEscape, "%v", err)
	}
	return string(dec)
}

func (r *Reader) skipValue() {
	switch tok := r.peek(); tok {
	case BeginArray:
		r.beginContainer(arrayOpen, '[')
		for r.hasNext() {
			r.skipValue()
		}
		r.endContainer(opEndArray, ']')
	case BeginObject:
		r.beginContainer(objectOpen, '{')
		for r.hasNext() {
			r.beginName()
			r.src.skipString()
			r.endName()
			r.skipValue()
		}
		r.endContainer(opEndObject, '}')
	case Boolean:
		r.nextBool()
	case Null:
		r.nextNull()
	case Number:
		r.nextNumber()
	case String:
		r.beginScalar()
		r.src.expectByte('"')
		r.src.skipString()
	default:
		r.src.fail(errNoValue, "cannot skip %v", tok)
	}
}
